package journey

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/utils"
)

const (
	// dd.MM.yy
	orderDateLayout = "02.01.06"

	unknownSource  = "an unknown source"
	metaUTMSource  = "meta_id"
	facebookSource = "facebook"
)

// SummarizeOrder monta a linha do pedido. SessionCount e DaysToConversion ficam
// nil quando o pedido não tem jornada, nunca zero.
func SummarizeOrder(order domain.Order) domain.OrderSummary {
	summary := domain.OrderSummary{
		Name:                 order.Name,
		ProcessedAtFormatted: order.ProcessedAt.Format(orderDateLayout),
		Sessions:             []domain.SessionRow{},
	}

	if order.CustomerJourney == nil {
		return summary
	}

	sessionCount := len(order.CustomerJourney.Moments)
	daysToConversion := order.CustomerJourney.DaysToConversion
	summary.SessionCount = &sessionCount
	summary.DaysToConversion = &daysToConversion

	summary.Sessions = make([]domain.SessionRow, 0, sessionCount)
	for i, moment := range order.CustomerJourney.Moments {
		summary.Sessions = append(summary.Sessions, SummarizeSession(moment, i, order.ProcessedAt))
	}

	return summary
}

// SummarizeSession monta a linha de uma sessão; index começa em zero
func SummarizeSession(moment domain.Moment, index int, orderProcessedAt time.Time) domain.SessionRow {
	return domain.SessionRow{
		Label:        fmt.Sprintf("Session %d", index+1),
		RelativeTime: humanize.RelTime(moment.OccurredAt, orderProcessedAt, "before", "after"),
		SourceLabel:  SourceLabel(moment),
	}
}

// SourceLabel corrige visitas vindas de anúncios da Meta que a Shopify não reconhece
func SourceLabel(moment domain.Moment) string {
	if moment.Source == unknownSource && moment.UTMParameters.Source == metaUTMSource {
		return facebookSource
	}
	return moment.Source
}

// BuildOverview resume os pedidos na ordem recebida. As médias consideram apenas
// pedidos com jornada e ficam nil quando nenhum tem.
func BuildOverview(orders []domain.Order) domain.SessionOverview {
	overview := domain.SessionOverview{
		Orders: make([]domain.OrderSummary, 0, len(orders)),
	}

	momentCounts := make([]int, 0, len(orders))
	daysToConversion := make([]int, 0, len(orders))

	for _, order := range orders {
		summary := SummarizeOrder(order)
		overview.Orders = append(overview.Orders, summary)

		if summary.SessionCount != nil {
			momentCounts = append(momentCounts, *summary.SessionCount)
			daysToConversion = append(daysToConversion, *summary.DaysToConversion)
		}
	}

	overview.AverageMomentCount = roundedAverage(momentCounts)
	overview.AverageDaysToConversion = roundedAverage(daysToConversion)

	return overview
}

func roundedAverage(values []int) *float64 {
	avg := utils.Average(values)
	if avg == nil {
		return nil
	}
	rounded := utils.RoundWithTwoDecimalPlace(*avg)
	return &rounded
}
