package productline

import "github.com/gofiber/fiber/v2"

type LineResponse struct {
	Line           string  `json:"line"`
	RawName        string  `json:"raw_name"`
	DerivedName    string  `json:"derived_name"`
	ByproductName  string  `json:"byproduct_name,omitempty"`
	ConversionRate float64 `json:"conversion_rate"`
	RawPrice       float64 `json:"raw_price"`
	DerivedPrice   float64 `json:"derived_price"`
	ByproductPrice float64 `json:"byproduct_price"`
}

// GET /api/product-lines
// The registry is immutable configuration; this is a read-only listing.
func ListLinesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lines := All()
		resp := make([]LineResponse, 0, len(lines))
		for _, cfg := range lines {
			resp = append(resp, LineResponse{
				Line:           string(cfg.Line),
				RawName:        cfg.RawName,
				DerivedName:    cfg.DerivedName,
				ByproductName:  cfg.ByproductName,
				ConversionRate: cfg.ConversionRate,
				RawPrice:       cfg.RawPrice,
				DerivedPrice:   cfg.DerivedPrice,
				ByproductPrice: cfg.ByproductPrice,
			})
		}
		return c.JSON(resp)
	}
}
