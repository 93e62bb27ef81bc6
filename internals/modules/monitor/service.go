package monitor

import (
	"context"
	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/utils"
)

type Service struct {
	monitorRepo Repository
}

func NewService(monitorRepo Repository) *Service {
	return &Service{
		monitorRepo: monitorRepo,
	}
}

// Details is a monitor together with its latest check outcome, if any.
type Details struct {
	Monitor    Monitor      `json:"monitor"`
	LastResult *CheckResult `json:"last_result"`
}

func (s *Service) CreateMonitor(ctx context.Context, spec MonitorSpec) (Monitor, error) {
	if err := spec.Validate(); err != nil {
		return Monitor{}, err
	}
	return s.monitorRepo.AddMonitor(ctx, spec)
}

func (s *Service) ListMonitors(ctx context.Context) ([]Monitor, error) {
	return s.monitorRepo.ListMonitors(ctx)
}

func (s *Service) GetMonitor(ctx context.Context, monitorID string) (Details, error) {
	const op string = "service.monitor.get"

	m, err := s.monitorRepo.GetMonitor(ctx, monitorID)
	if err != nil {
		return Details{}, err
	}
	if m == nil {
		return Details{}, apperror.New(apperror.NotFound, op, nil).WithMessage(utils.MonitorNotFound)
	}

	last, err := s.monitorRepo.GetLastResult(ctx, monitorID)
	if err != nil {
		return Details{}, err
	}

	return Details{Monitor: *m, LastResult: last}, nil
}

func (s *Service) DeleteMonitor(ctx context.Context, monitorID string) error {
	const op string = "service.monitor.delete"

	removed, err := s.monitorRepo.DeleteMonitor(ctx, monitorID)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.New(apperror.NotFound, op, nil).WithMessage(utils.MonitorNotFound)
	}
	return nil
}
