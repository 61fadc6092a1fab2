package ledger

import (
	"time"

	"quartermaster-backend/internal/finance"
	"quartermaster-backend/internal/models"
	"quartermaster-backend/internal/productline"
)

// Service implements the daily production ledger with carry-over
// accounting, shared by every product line.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertInput: one day's figures for a line. Nil prices fall back to the
// line's configured defaults.
type UpsertInput struct {
	RawInput          float64
	DerivedCollected  float64
	DerivedDispatched float64
	ByproductQty      float64
	RawPrice          *float64
	DerivedPrice      *float64
	ByproductPrice    *float64
	OtherCosts        float64
	Note              string
}

// DailyResult: the persisted record plus the derived figures for the day.
type DailyResult struct {
	Record     models.ProductionRecord
	Efficiency float64
	Revenue    float64
	Cost       float64
	NetProfit  float64
}

// UpsertDaily records (or re-records) one day for a line. The previous
// day's remaining becomes today's carry-over: 0 when no row exists for
// that day, with PrevRecorded kept so "no record" stays distinguishable
// from "recorded zero". The whole read-modify-write runs atomically per
// (line, date) key, so concurrent upserts cannot produce a stale carry-over.
func (s *Service) UpsertDaily(cfg productline.Config, date time.Time, in UpsertInput) (*DailyResult, error) {
	date = normalizeDate(date)

	rec := models.ProductionRecord{
		Line:              string(cfg.Line),
		Date:              date,
		RawInput:          in.RawInput,
		DerivedCollected:  in.DerivedCollected,
		DerivedDispatched: in.DerivedDispatched,
		ByproductQty:      in.ByproductQty,
		RawPrice:          valueOr(in.RawPrice, cfg.RawPrice),
		DerivedPrice:      valueOr(in.DerivedPrice, cfg.DerivedPrice),
		ByproductPrice:    valueOr(in.ByproductPrice, cfg.ByproductPrice),
		OtherCosts:        in.OtherCosts,
		Note:              in.Note,
	}

	err := s.repo.Atomically(func(repo Repository) error {
		prev, err := repo.FindByLineDate(string(cfg.Line), date.AddDate(0, 0, -1))
		switch {
		case err == nil:
			rec.CarriedOver = prev.DerivedRemaining
			rec.PrevRecorded = true
		case err == ErrNotFound:
			rec.CarriedOver = 0
			rec.PrevRecorded = false
		default:
			return err
		}

		rec.DerivedRemaining = remaining(rec.CarriedOver, rec.DerivedCollected, rec.DerivedDispatched)
		return repo.Save(&rec)
	})
	if err != nil {
		return nil, err
	}

	pnl := recordPNL(rec)
	return &DailyResult{
		Record:     rec,
		Efficiency: efficiency(rec.RawInput, rec.DerivedCollected),
		Revenue:    pnl.Revenue.InexactFloat64(),
		Cost:       pnl.Cost.InexactFloat64(),
		NetProfit:  pnl.Net().InexactFloat64(),
	}, nil
}

// DayRow: one day of a weekly report. Missing dates are synthesized with
// zero values and Recorded=false so the report always has 7 rows.
type DayRow struct {
	Date              string  `json:"date"`
	Recorded          bool    `json:"recorded"`
	RawInput          float64 `json:"raw_input"`
	DerivedCollected  float64 `json:"derived_collected"`
	DerivedDispatched float64 `json:"derived_dispatched"`
	ByproductQty      float64 `json:"byproduct_qty"`
	CarriedOver       float64 `json:"carried_over"`
	DerivedRemaining  float64 `json:"derived_remaining"`
	Efficiency        float64 `json:"efficiency"`
	Note              string  `json:"note,omitempty"`
}

type WeeklyReport struct {
	Line              string   `json:"line"`
	Week              int      `json:"week"`
	Year              int      `json:"year"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	Days              []DayRow `json:"days"`
	TotalRawInput     float64  `json:"total_raw_input"`
	TotalCollected    float64  `json:"total_collected"`
	TotalDispatched   float64  `json:"total_dispatched"`
	TotalByproduct    float64  `json:"total_byproduct"`
	AverageEfficiency float64  `json:"average_efficiency"` // over days with raw input only
}

// Weekly returns the 7-day series for a line plus totals.
func (s *Service) Weekly(cfg productline.Config, week, year int) (*WeeklyReport, error) {
	start := WeekStart(year, week)
	end := start.AddDate(0, 0, 6)

	recs, err := s.repo.FindRange(string(cfg.Line), start, end)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.ProductionRecord, len(recs))
	for _, r := range recs {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	report := &WeeklyReport{
		Line:      string(cfg.Line),
		Week:      week,
		Year:      year,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Days:      make([]DayRow, 0, 7),
	}

	effSum := 0.0
	effDays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		rec, ok := byDate[dateStr]
		row := DayRow{Date: dateStr}
		if ok {
			row.Recorded = true
			row.RawInput = rec.RawInput
			row.DerivedCollected = rec.DerivedCollected
			row.DerivedDispatched = rec.DerivedDispatched
			row.ByproductQty = rec.ByproductQty
			row.CarriedOver = rec.CarriedOver
			row.DerivedRemaining = rec.DerivedRemaining
			row.Efficiency = efficiency(rec.RawInput, rec.DerivedCollected)
			row.Note = rec.Note

			report.TotalRawInput += rec.RawInput
			report.TotalCollected += rec.DerivedCollected
			report.TotalDispatched += rec.DerivedDispatched
			report.TotalByproduct += rec.ByproductQty
			if rec.RawInput > 0 {
				effSum += row.Efficiency
				effDays++
			}
		}
		report.Days = append(report.Days, row)
	}
	if effDays > 0 {
		report.AverageEfficiency = effSum / float64(effDays)
	}
	return report, nil
}

// MonthlyAggregate: one month's totals. HasData=false means no ledger rows
// exist for the month; numbers stay zero rather than being estimated.
type MonthlyAggregate struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	HasData      bool    `json:"has_data"`
	DaysRecorded int     `json:"days_recorded"`
	RawInput     float64 `json:"raw_input"`
	Collected    float64 `json:"collected"`
	Dispatched   float64 `json:"dispatched"`
	ByproductQty float64 `json:"byproduct_qty"`
	Efficiency   float64 `json:"efficiency"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	NetProfit    float64 `json:"net_profit"`
}

// Monthly aggregates monthCount months ending at (year, month).
func (s *Service) Monthly(cfg productline.Config, year, month, monthCount int) ([]MonthlyAggregate, error) {
	if monthCount < 1 {
		monthCount = 1
	}
	out := make([]MonthlyAggregate, 0, monthCount)

	// Oldest month first.
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthCount - 1), 0)
	for i := 0; i < monthCount; i++ {
		firstDay := first.AddDate(0, i, 0)
		lastDay := firstDay.AddDate(0, 1, -1)

		recs, err := s.repo.FindRange(string(cfg.Line), firstDay, lastDay)
		if err != nil {
			return nil, err
		}

		agg := MonthlyAggregate{Year: firstDay.Year(), Month: int(firstDay.Month())}
		total := finance.PNL{}
		for _, r := range recs {
			agg.RawInput += r.RawInput
			agg.Collected += r.DerivedCollected
			agg.Dispatched += r.DerivedDispatched
			agg.ByproductQty += r.ByproductQty
			total = total.Add(recordPNL(r))
		}
		agg.DaysRecorded = len(recs)
		agg.HasData = len(recs) > 0
		if agg.HasData {
			agg.Efficiency = efficiency(agg.RawInput, agg.Collected)
			agg.Revenue = total.Revenue.InexactFloat64()
			agg.Cost = total.Cost.InexactFloat64()
			agg.NetProfit = total.Net().InexactFloat64()
		}
		out = append(out, agg)
	}
	return out, nil
}

// WeekStart returns the Monday starting ISO-style week number `week` of
// `year`, counted from the Monday of the week containing January 1st.
func WeekStart(year, week int) time.Time {
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	daysToMonday := (int(jan1.Weekday()) + 6) % 7
	firstMonday := jan1.AddDate(0, 0, -daysToMonday)
	return firstMonday.AddDate(0, 0, (week-1)*7)
}

func remaining(carry, collected, dispatched float64) float64 {
	r := carry + collected - dispatched
	if r < 0 {
		return 0 // dispatched beyond stock is a data error, never negative
	}
	return r
}

func efficiency(raw, collected float64) float64 {
	if raw == 0 {
		return 0
	}
	return collected / raw
}

func recordPNL(r models.ProductionRecord) finance.PNL {
	return finance.Compute(r.RawInput, r.RawPrice, r.DerivedCollected, r.DerivedPrice,
		r.ByproductQty, r.ByproductPrice, r.OtherCosts)
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func valueOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
