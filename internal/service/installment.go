package service

import (
	"context"

	"github.com/rentdesk/rentdesk/internal/api/dto"
	"github.com/rentdesk/rentdesk/internal/domain/contract"
	"github.com/rentdesk/rentdesk/internal/domain/installment"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/events"
	"github.com/rentdesk/rentdesk/internal/idempotency"
	"github.com/rentdesk/rentdesk/internal/metrics"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type InstallmentService interface {
	CreateInstallment(ctx context.Context, req dto.CreateInstallmentRequest) (*dto.InstallmentResponse, error)
	// GenerateSchedule creates the contract's periodic installments, skipping
	// due dates that already hold one of the schedule type
	GenerateSchedule(ctx context.Context, contractID string) (*dto.GenerateScheduleResponse, error)
	GetInstallment(ctx context.Context, id string) (*dto.InstallmentResponse, error)
	GetInstallments(ctx context.Context, filter *types.InstallmentFilter) (*dto.ListInstallmentsResponse, error)
	// UpdateInstallment applies req. A status change is checked against the
	// contract's other installments and may be corrected to OVERDUE.
	UpdateInstallment(ctx context.Context, id string, req dto.UpdateInstallmentRequest) (*dto.UpdateInstallmentResponse, error)
	DeleteInstallment(ctx context.Context, id string) error
	// MarkOverdue flags every UNPAID installment due before today
	MarkOverdue(ctx context.Context) (int, error)
	MarkOverdueReport(ctx context.Context) (*dto.MarkOverdueResponse, error)
}

type installmentService struct {
	ServiceParams
}

func NewInstallmentService(params ServiceParams) InstallmentService {
	return &installmentService{
		ServiceParams: params,
	}
}

func (s *installmentService) CreateInstallment(ctx context.Context, req dto.CreateInstallmentRequest) (*dto.InstallmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.loadContract(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}

	candidate, err := req.Candidate()
	if err != nil {
		return nil, err
	}
	if err := installment.ValidateCreation(candidate, contractWindow(parent)); err != nil {
		metrics.RecordValidationFailure("creation")
		s.Logger.Debugw("rejected installment creation",
			"contract_id", parent.ID,
			"error", err,
		)
		return nil, err
	}

	inst, err := req.ToInstallment(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.InstallmentRepo.Create(ctx, inst); err != nil {
		return nil, err
	}

	s.publishInstallmentEvent(ctx, events.InstallmentChange{
		EventName:   types.WebhookEventInstallmentCreated,
		Installment: inst,
	})

	return dto.NewInstallmentResponse(inst), nil
}

func (s *installmentService) GenerateSchedule(ctx context.Context, contractID string) (*dto.GenerateScheduleResponse, error) {
	if contractID == "" {
		return nil, ierr.NewError("contract ID is required").
			WithHint("Contract ID is required").
			Mark(ierr.ErrValidation)
	}

	parent, err := s.loadContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if parent.ContractStatus != types.ContractStatusActive {
		return nil, ierr.NewErrorf("contract %s is %s", parent.ID, parent.ContractStatus).
			WithHint("Installments can only be generated for active contracts").
			WithReportableDetails(map[string]any{
				"contract_id":     parent.ID,
				"contract_status": parent.ContractStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	planned, err := installment.GenerateSchedule(installment.ScheduleRequest{
		StartDate:         parent.StartDate,
		DurationMonths:    parent.DurationMonths,
		PayCycleMonths:    parent.PayCycleMonths,
		InstallmentAmount: parent.InstallmentAmount(),
	})
	if err != nil {
		return nil, err
	}

	typ := parent.ContractType.ScheduleInstallmentType()
	var created []*installment.Installment
	skipped := 0

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.InstallmentRepo.ListByContract(txCtx, parent.ID)
		if err != nil {
			return err
		}

		var remaining []installment.ScheduledInstallment
		remaining, skipped = installment.ExcludeExisting(planned, existing, typ)
		if len(remaining) == 0 {
			return nil
		}

		created = lo.Map(remaining, func(p installment.ScheduledInstallment, _ int) *installment.Installment {
			return s.scheduledToInstallment(txCtx, parent, typ, p)
		})
		return s.InstallmentRepo.CreateBulk(txCtx, created)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordGenerated(len(created))
	s.Logger.Infow("generated installment schedule",
		"contract_id", parent.ID,
		"created", len(created),
		"skipped", skipped,
	)

	for _, inst := range created {
		s.publishInstallmentEvent(ctx, events.InstallmentChange{
			EventName:   types.WebhookEventInstallmentCreated,
			Installment: inst,
		})
	}

	return &dto.GenerateScheduleResponse{
		ContractID: parent.ID,
		Created:    len(created),
		Skipped:    skipped,
		Items: lo.Map(created, func(i *installment.Installment, _ int) *dto.InstallmentResponse {
			return dto.NewInstallmentResponse(i)
		}),
	}, nil
}

func (s *installmentService) scheduledToInstallment(ctx context.Context, parent *contract.Contract, typ types.InstallmentType, p installment.ScheduledInstallment) *installment.Installment {
	return &installment.Installment{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INSTALLMENT),
		ContractID:        parent.ID,
		Amount:            p.Amount,
		AmountReceived:    decimal.Zero,
		DueDate:           p.DueDate,
		PeriodStart:       lo.ToPtr(p.PeriodStart),
		PeriodEnd:         lo.ToPtr(p.PeriodEnd),
		InstallmentStatus: types.InstallmentStatusUnpaid,
		InstallmentType:   typ,
		IdempotencyKey: s.IdempotencyGenerator.GenerateKey(idempotency.ScopeInstallmentSchedule, map[string]interface{}{
			"contract_id": parent.ID,
			"type":        int(typ),
			"due_date":    types.FormatDate(p.DueDate),
		}),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (s *installmentService) GetInstallment(ctx context.Context, id string) (*dto.InstallmentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("installment ID is required").
			WithHint("Installment ID is required").
			Mark(ierr.ErrValidation)
	}

	inst, err := s.InstallmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInstallmentResponse(inst), nil
}

func (s *installmentService) GetInstallments(ctx context.Context, filter *types.InstallmentFilter) (*dto.ListInstallmentsResponse, error) {
	if filter == nil {
		filter = types.NewInstallmentFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if filter.QueryFilter.Sort == nil {
		filter.QueryFilter.Sort = lo.ToPtr("due_date")
		filter.QueryFilter.Order = lo.ToPtr(types.OrderAsc)
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.InstallmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.InstallmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := lo.Map(items, func(i *installment.Installment, _ int) *dto.InstallmentResponse {
		return dto.NewInstallmentResponse(i)
	})
	response := types.NewListResponse(responses, count, filter.GetLimit(), filter.GetOffset())
	return &response, nil
}

func (s *installmentService) UpdateInstallment(ctx context.Context, id string, req dto.UpdateInstallmentRequest) (*dto.UpdateInstallmentResponse, error) {
	if id == "" {
		return nil, ierr.NewError("installment ID is required").
			WithHint("Installment ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.InstallmentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContractID != nil && *req.ContractID != current.ContractID {
		return nil, ierr.NewError("contract of an installment cannot change").
			WithHint("The contract of an installment cannot be changed").
			WithReportableDetails(map[string]any{
				"installment_id": id,
				"contract_id":    current.ContractID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if req.Type != nil && *req.Type != current.InstallmentType {
		return nil, ierr.NewError("type of an installment cannot change").
			WithHint("The type of an installment cannot be changed").
			WithReportableDetails(map[string]any{
				"installment_id": id,
				"type":           current.InstallmentType,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	updated := *current
	if err := req.Apply(&updated); err != nil {
		return nil, err
	}

	if due := req.DueDate(); due != nil && types.CompareDates(*due, current.DueDate) != 0 {
		parent, err := s.loadContract(ctx, current.ContractID)
		if err != nil {
			return nil, err
		}
		candidate := installment.CreationCandidate{Amount: updated.Amount, DueDate: due}
		if err := installment.ValidateCreation(candidate, contractWindow(parent)); err != nil {
			metrics.RecordValidationFailure("creation")
			return nil, err
		}
	}

	previous := current.InstallmentStatus
	response := &dto.UpdateInstallmentResponse{}

	if req.Status != nil {
		siblings, err := s.InstallmentRepo.ListByContract(ctx, current.ContractID)
		if err != nil {
			return nil, err
		}
		siblings = lo.Map(siblings, func(sib *installment.Installment, _ int) *installment.Installment {
			if sib.ID == updated.ID {
				return &updated
			}
			return sib
		})

		decision := installment.ValidateTransition(&updated, *req.Status, siblings, s.now())
		if !decision.Allowed {
			metrics.RecordTransition(metrics.ResultRejected)
			metrics.RecordValidationFailure(string(decision.Reason))
			s.Logger.Debugw("rejected installment status change",
				"installment_id", id,
				"from", previous,
				"to", *req.Status,
				"reason", decision.Reason,
			)
			return nil, ierr.NewError(decision.Message).
				WithHint(decision.Message).
				WithReportableDetails(map[string]any{
					"installment_id": id,
					"reason":         decision.Reason,
				}).
				Mark(ierr.ErrInvalidOperation)
		}

		updated.InstallmentStatus = decision.EffectiveStatus(*req.Status)
		if decision.Corrected() {
			metrics.RecordTransition(metrics.ResultCorrected)
			s.Logger.Infow("installment status corrected to overdue",
				"installment_id", id,
				"requested", *req.Status,
				"due_date", types.FormatDate(updated.DueDate),
			)
			response.Corrected = true
			response.Warning = decision.Message
		} else {
			metrics.RecordTransition(metrics.ResultAllowed)
		}
	}

	updated.UpdatedAt = s.Clock.Now().UTC()
	updated.UpdatedBy = types.GetUserID(ctx)

	if err := s.InstallmentRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.publishInstallmentEvent(ctx, events.InstallmentChange{
		EventName:      events.StatusEventName(previous, updated.InstallmentStatus),
		Installment:    &updated,
		PreviousStatus: lo.ToPtr(previous),
		Corrected:      response.Corrected,
	})

	response.InstallmentResponse = dto.NewInstallmentResponse(&updated)
	return response, nil
}

func (s *installmentService) DeleteInstallment(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("installment ID is required").
			WithHint("Installment ID is required").
			Mark(ierr.ErrValidation)
	}

	inst, err := s.InstallmentRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.InstallmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishInstallmentEvent(ctx, events.InstallmentChange{
		EventName:   types.WebhookEventInstallmentDeleted,
		Installment: inst,
	})
	return nil
}

func (s *installmentService) MarkOverdue(ctx context.Context) (int, error) {
	report, err := s.MarkOverdueReport(ctx)
	if err != nil {
		return 0, err
	}
	return report.Marked, nil
}

func (s *installmentService) MarkOverdueReport(ctx context.Context) (*dto.MarkOverdueResponse, error) {
	today := types.DateOf(s.now())

	filter := types.NewNoLimitInstallmentFilter()
	filter.Statuses = []types.InstallmentStatus{types.InstallmentStatusUnpaid}
	filter.DueBefore = &today

	candidates, err := s.InstallmentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var marked []*installment.Installment
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		for _, inst := range candidates {
			if types.CompareDates(inst.DueDate, today) >= 0 || inst.InstallmentStatus != types.InstallmentStatusUnpaid {
				continue
			}
			updated := *inst
			updated.InstallmentStatus = types.InstallmentStatusOverdue
			updated.UpdatedAt = s.Clock.Now().UTC()
			updated.UpdatedBy = types.GetUserID(txCtx)
			if err := s.InstallmentRepo.Update(txCtx, &updated); err != nil {
				return err
			}
			marked = append(marked, &updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOverdueMarked(len(marked))
	s.Logger.Infow("marked installments overdue",
		"tenant_id", types.GetTenantID(ctx),
		"date", types.FormatDate(today),
		"marked", len(marked),
	)

	for _, inst := range marked {
		s.publishInstallmentEvent(ctx, events.InstallmentChange{
			EventName:      types.WebhookEventInstallmentOverdue,
			Installment:    inst,
			PreviousStatus: lo.ToPtr(types.InstallmentStatusUnpaid),
			Corrected:      true,
		})
	}

	return &dto.MarkOverdueResponse{
		Date:   types.FormatDate(today),
		Marked: len(marked),
	}, nil
}

// publishInstallmentEvent never fails the caller, the mutation is already stored
func (s *installmentService) publishInstallmentEvent(ctx context.Context, change events.InstallmentChange) {
	event, err := events.NewInstallmentEvent(ctx, change, s.Clock.Now())
	if err != nil {
		s.Logger.Errorw("failed to build installment event",
			"event_name", change.EventName,
			"error", err,
		)
		return
	}
	if err := s.WebhookPublisher.PublishWebhook(ctx, event); err != nil {
		s.Logger.Errorw("failed to publish installment event",
			"event_name", event.EventName,
			"event_id", event.ID,
			"error", err,
		)
	}
}

func contractWindow(c *contract.Contract) installment.ContractWindow {
	return installment.ContractWindow{
		StartDate:      c.StartDate,
		DurationMonths: c.DurationMonths,
	}
}
