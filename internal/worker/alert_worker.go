package worker

import (
	"github.com/gridwatch/outage-service/internal/service"
)

// StartAlertWorker registers event handlers for outbound alerts.
func StartAlertWorker(alertService *service.AlertService) {
	if alertService == nil {
		return
	}
	alertService.RegisterHandlers()
}
