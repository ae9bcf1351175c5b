package api

import (
	"net/http"
	"time"

	"github.com/ignite/dixa-voyado-bridge/internal/dixa"
	"github.com/ignite/dixa-voyado-bridge/internal/eventlog"
	"github.com/ignite/dixa-voyado-bridge/internal/pkg/httputil"
	"github.com/ignite/dixa-voyado-bridge/internal/service/csat"
	"github.com/ignite/dixa-voyado-bridge/internal/service/review"
	"github.com/ignite/dixa-voyado-bridge/internal/voyado"
)

// ServiceName identifies this service in health responses and logs.
const ServiceName = "dixa-voyado-bridge"

// Handlers contains all HTTP handlers.
type Handlers struct {
	csatService   *csat.Service
	reviewService *review.Service
	crm           *voyado.Client
	inbox         *dixa.Client
	sink          eventlog.Sink
	csatSchemaID  string
}

// NewHandlers creates a new Handlers instance. crm and inbox back the
// diagnostic routes; the webhook routes go through the services.
func NewHandlers(
	csatService *csat.Service,
	reviewService *review.Service,
	crm *voyado.Client,
	inbox *dixa.Client,
	sink eventlog.Sink,
	csatSchemaID string,
) *Handlers {
	return &Handlers{
		csatService:   csatService,
		reviewService: reviewService,
		crm:           crm,
		inbox:         inbox,
		sink:          sink,
		csatSchemaID:  csatSchemaID,
	}
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
