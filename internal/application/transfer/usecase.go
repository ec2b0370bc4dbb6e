package transfer

import (
	"fmt"

	"github.com/tu-usuario/activos-pro/internal/application/dto"
	"github.com/tu-usuario/activos-pro/internal/domain"
	"github.com/tu-usuario/activos-pro/internal/domain/entity"
	"github.com/tu-usuario/activos-pro/internal/domain/repository"
)

// ReceiptGenerator produce el comprobante PDF de un traslado confirmado.
type ReceiptGenerator interface {
	GenerateReceipt(t *entity.Transfer) ([]byte, error)
}

// UseCase consultas de solo lectura sobre el libro mayor de traslados, más la
// descarga del comprobante. Los traslados nacen del commit de canastas y son
// inmutables desde aquí.
type UseCase struct {
	repo     repository.TransferRepository
	receipts ReceiptGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.TransferRepository, receipts ReceiptGenerator) *UseCase {
	return &UseCase{repo: repo, receipts: receipts}
}

// GetByID obtiene un traslado de la empresa.
func (uc *UseCase) GetByID(companyID, id string) (*dto.TransferResponse, error) {
	t, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToTransferResponse(t), nil
}

// ListByBasket lista los traslados producidos por una canasta.
func (uc *UseCase) ListByBasket(companyID, basketID string) (*dto.TransferListResponse, error) {
	list, err := uc.repo.ListByBasket(basketID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		if t.CompanyID != companyID {
			continue
		}
		items = append(items, *dto.ToTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: len(items), Total: len(items)},
	}, nil
}

// ListByCompany lista traslados de la empresa con paginación.
func (uc *UseCase) ListByCompany(companyID string, page dto.PageRequest) (*dto.TransferListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *dto.ToTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// DownloadReceipt genera el comprobante PDF del traslado y un nombre de
// archivo sugerido.
func (uc *UseCase) DownloadReceipt(companyID, id string) ([]byte, string, error) {
	t, err := uc.get(companyID, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.GenerateReceipt(t)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	filename := fmt.Sprintf("traslado-%s.pdf", t.ID)
	return pdf, filename, nil
}

func (uc *UseCase) get(companyID, id string) (*entity.Transfer, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return t, nil
}
