package webhook

import (
	"go.uber.org/fx"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/deliverylog"
)

func newDeliveryRecorder(s *deliverylog.Service) DeliveryRecorder { return s }

var Module = fx.Options(
	fx.Provide(newDeliveryRecorder),
	fx.Provide(NewHandler),
)
