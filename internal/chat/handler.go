package chat

import (
	"context"

	"github.com/bobmcallan/ava/internal/models"
)

// Intent labels produced by the classifier. The generic label doubles as
// the context-override pivot: a short bare-entity turn classified
// generic inherits the previous non-generic intent.
const (
	IntentGeneralInfo   = "Genel Bilgi/Durum"
	IntentNewsAndRisk   = "Risk ve Haber Analizi"
	IntentPriceQuery    = "Hedef Fiyat Sorgulama"
	IntentTradeIntent   = "Alım-Satım Niyeti"
	IntentTrendForecast = "Piyasa Trend/Tahmin"
)

// IntentLabels lists every known intent in classifier output order.
var IntentLabels = []string{
	IntentGeneralInfo,
	IntentNewsAndRisk,
	IntentPriceQuery,
	IntentTradeIntent,
	IntentTrendForecast,
}

// Handler executes one intent against a resolved instrument. Data-source
// failures become templated Turkish replies, not errors; an error return
// means the turn could not produce any reply.
type Handler interface {
	Execute(ctx context.Context, inst models.Instrument, question string, ann *models.Annotation) (string, error)
}
