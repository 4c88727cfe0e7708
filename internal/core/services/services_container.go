package services

import (
	portsrepo "github.com/SscSPs/staff_payroll_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_payroll_app/internal/core/ports/services"
	"github.com/SscSPs/staff_payroll_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// events may be nil to disable analytics.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, events portssvc.EventTracker) *portssvc.ServiceContainer {
	base := BaseService{Events: events}

	return &portssvc.ServiceContainer{
		User:         NewUserService(repos.UserRepo, base),
		Salary:       NewSalaryService(repos.PayrollRepo, repos.UserRepo, base),
		ProfitFund:   NewProfitFundService(repos.PayrollRepo, repos.UserRepo, base),
		Withdrawal:   NewWithdrawalService(repos.PayrollRepo, repos.UserRepo, base),
		TokenService: NewTokenService(cfg),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.SalarySvcFacade     = (*salaryService)(nil)
	_ portssvc.ProfitFundSvcFacade = (*profitFundService)(nil)
	_ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.TokenSvcFacade      = (*tokenService)(nil)
)
