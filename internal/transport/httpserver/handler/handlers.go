package handler

import (
	authdomain "pg-connect/internal/domain/auth"
	dashboarddomain "pg-connect/internal/domain/dashboard"
	feesdomain "pg-connect/internal/domain/fees"
	insightdomain "pg-connect/internal/domain/insight"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	ticketsdomain "pg-connect/internal/domain/tickets"
	viewsdomain "pg-connect/internal/domain/views"
	"pg-connect/pkg/logger"
)

type Services struct {
	Auth      *authdomain.Service
	Residents *residentsdomain.Service
	Fees      *feesdomain.Service
	Tickets   *ticketsdomain.Service
	Messages  *messagesdomain.Service
	Dashboard *dashboarddomain.Service
	Insight   *insightdomain.Service
	Views     *viewsdomain.Router
}

type Handlers struct {
	Auth      *authdomain.Service
	Residents *residentsdomain.Service
	Fees      *feesdomain.Service
	Tickets   *ticketsdomain.Service
	Messages  *messagesdomain.Service
	Dashboard *dashboarddomain.Service
	Insight   *insightdomain.Service
	Views     *viewsdomain.Router
	log       logger.Logger
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{
		Auth:      services.Auth,
		Residents: services.Residents,
		Fees:      services.Fees,
		Tickets:   services.Tickets,
		Messages:  services.Messages,
		Dashboard: services.Dashboard,
		Insight:   services.Insight,
		Views:     services.Views,
		log:       log,
	}
}
