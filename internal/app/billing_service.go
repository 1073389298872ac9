package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/billid/internal/core/acronym"
	"github.com/example/billid/internal/core/billing"
	"github.com/example/billid/internal/ports/primary"
	"github.com/example/billid/internal/ports/secondary"
)

// ErrPayloadSource matches generate requests that do not name exactly one
// payload source.
var ErrPayloadSource = billing.ErrPayloadSource

// BillingServiceImpl implements the BillingService interface.
type BillingServiceImpl struct {
	clock  secondary.Clock
	logger *zap.Logger
}

// NewBillingService creates a new BillingService with injected dependencies.
func NewBillingService(clock secondary.Clock, logger *zap.Logger) *BillingServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingServiceImpl{
		clock:  clock,
		logger: logger,
	}
}

// GenerateID composes a new identifier stamped with the clock's year.
func (s *BillingServiceImpl) GenerateID(ctx context.Context, req primary.GenerateIDRequest) (*primary.GenerateIDResponse, error) {
	payload, err := s.payloadFor(req)
	if err != nil {
		return nil, err
	}

	year := s.clock.Now().Year()
	id, err := billing.Compose(billing.ComposeRequest{
		ServiceCode: req.ServiceCode,
		Payload:     payload,
		Phase:       req.Phase,
		Year:        year,
	})
	if err != nil {
		s.logger.Debug("compose rejected",
			zap.String("service", req.ServiceCode),
			zap.String("code", string(billing.CodeOf(err))),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("generated billing id",
		zap.String("id", id.Value),
		zap.String("base", id.BaseCode),
		zap.String("phase", id.Phase))

	return &primary.GenerateIDResponse{
		ID:          id.Value,
		BaseCode:    id.BaseCode,
		CheckDigits: id.CheckDigits,
		Payload:     id.BaseCode[4:],
		Phase:       id.Phase,
		Year:        year,
	}, nil
}

func (s *BillingServiceImpl) payloadFor(req primary.GenerateIDRequest) (billing.Payload, error) {
	sources := 0
	if req.Sequential != nil {
		sources++
	}
	if req.ClientName != "" {
		sources++
	}
	if req.Acronym != "" {
		sources++
	}
	if sources != 1 {
		return billing.Payload{}, &billing.Error{
			Code:    billing.CodePayloadSource,
			Message: "exactly one of sequential, client name or acronym is required",
		}
	}

	switch {
	case req.Sequential != nil:
		if req.Phase != "" {
			return billing.Payload{}, &billing.Error{
				Code:    billing.CodeInvalidPhase,
				Message: fmt.Sprintf("phase '%s' requires a client-based identifier", req.Phase),
			}
		}
		return billing.Sequential(*req.Sequential), nil
	case req.ClientName != "":
		acr := acronym.Generate(req.ClientName)
		s.logger.Debug("derived client acronym",
			zap.String("client", req.ClientName),
			zap.String("acronym", acr))
		return billing.Acronym(acr), nil
	default:
		return billing.Acronym(req.Acronym), nil
	}
}

// ValidateID checks an identifier's structure and check digits.
func (s *BillingServiceImpl) ValidateID(ctx context.Context, candidate string) (*primary.BillingID, error) {
	details, err := billing.Validate(candidate)
	if err != nil {
		s.logger.Info("billing id rejected",
			zap.String("candidate", candidate),
			zap.String("code", string(billing.CodeOf(err))))
		return nil, err
	}

	s.logger.Debug("billing id valid", zap.String("id", details.ID))
	return detailsToBillingID(details), nil
}

// GenerateAcronym derives the client acronym for a name.
func (s *BillingServiceImpl) GenerateAcronym(ctx context.Context, name string) string {
	return acronym.Generate(name)
}

// ListServices returns the service catalogue.
func (s *BillingServiceImpl) ListServices(ctx context.Context) []*primary.ServiceType {
	list := billing.Services()
	out := make([]*primary.ServiceType, len(list))
	for i, svc := range list {
		out[i] = &primary.ServiceType{Code: svc.Code, Description: svc.Description}
	}
	return out
}

// ListPhases returns the project phases.
func (s *BillingServiceImpl) ListPhases(ctx context.Context) []*primary.ProjectPhase {
	list := billing.Phases()
	out := make([]*primary.ProjectPhase, len(list))
	for i, p := range list {
		out[i] = phaseToProjectPhase(p)
	}
	return out
}

// Helper functions

func detailsToBillingID(d *billing.Details) *primary.BillingID {
	id := &primary.BillingID{
		ID:                 d.ID,
		ServiceCode:        d.ServiceCode,
		ServiceDescription: d.ServiceDescription,
		Year:               d.Year,
		Payload:            d.Payload,
		CheckDigits:        d.CheckDigits,
	}
	if d.Sequential >= 0 {
		seq := d.Sequential
		id.Sequential = &seq
	}
	if d.Phase != nil {
		id.Phase = phaseToProjectPhase(*d.Phase)
	}
	return id
}

func phaseToProjectPhase(p billing.Phase) *primary.ProjectPhase {
	return &primary.ProjectPhase{
		Code:           p.Code,
		Description:    p.Description,
		PaymentPercent: p.PaymentPercent,
	}
}

// Ensure BillingServiceImpl implements the interface
var _ primary.BillingService = (*BillingServiceImpl)(nil)
