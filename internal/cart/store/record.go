package store

import (
	"fmt"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
)

// lineRecord is the persisted shape of one cart line. Price is kept in minor
// units next to its ISO currency code so round-trips stay exact.
type lineRecord struct {
	ProductID  int64   `json:"product_id"`
	Size       *string `json:"size,omitempty"`
	Color      *string `json:"color,omitempty"`
	Name       string  `json:"name"`
	PriceCents int64   `json:"price_cents"`
	Currency   string  `json:"currency"`
	Image      string  `json:"image,omitempty"`
	Quantity   int     `json:"quantity"`
}

func toRecords(lines []domain.LineItem) []lineRecord {
	records := make([]lineRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, lineRecord{
			ProductID:  line.Key.ProductID,
			Size:       line.Key.Size,
			Color:      line.Key.Color,
			Name:       line.Name,
			PriceCents: line.UnitPrice.Amount,
			Currency:   line.UnitPrice.Currency.String(),
			Image:      line.Image,
			Quantity:   line.Quantity,
		})
	}
	return records
}

func fromRecords(records []lineRecord) ([]domain.LineItem, error) {
	var lines []domain.LineItem

	for _, rec := range records {
		if rec.Quantity < 1 {
			return nil, fmt.Errorf("line for product %d has quantity %d", rec.ProductID, rec.Quantity)
		}

		unit, err := domain.ParseCurrency(rec.Currency)
		if err != nil {
			return nil, fmt.Errorf("line for product %d: %w", rec.ProductID, err)
		}

		lines = append(lines, domain.LineItem{
			Key: domain.LineItemKey{
				ProductID: rec.ProductID,
				Size:      rec.Size,
				Color:     rec.Color,
			},
			Name:      rec.Name,
			UnitPrice: domain.NewMoney(rec.PriceCents, unit),
			Image:     rec.Image,
			Quantity:  rec.Quantity,
		})
	}

	return lines, nil
}
