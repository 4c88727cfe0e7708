package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
)

type Mode string

const (
	ModeEnforce Mode = "enforce"
	ModeShadow  Mode = "shadow"
)

// ParseMode reads an AUTHZ_MODE value. Empty means enforce.
func ParseMode(raw string) (Mode, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ModeEnforce, nil
	}
	switch Mode(raw) {
	case ModeEnforce, ModeShadow:
		return Mode(raw), nil
	default:
		return "", errors.New("authz: invalid AUTHZ_MODE (expected enforce|shadow)")
	}
}

// Objects and actions guarded by the policy.
const (
	ObjSalary     = "salary"
	ObjProfitFund = "profit_fund"
	ObjWithdrawal = "withdrawal"
	ObjUser       = "user"

	ActCreate    = "create"
	ActRead      = "read"
	ActEdit      = "edit"
	ActApprove   = "approve"
	ActRevert    = "revert"
	ActMarkPaid  = "mark_paid"
	ActDelete    = "delete"
	ActUpdate    = "update"
	ActActivate  = "activate"
	ActClose     = "close"
	ActSet       = "set"
	ActReconcile = "reconcile"
	ActRequest   = "request"
	ActReject    = "reject"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicies grants each role its own permissions; inheritance is in defaultGroupings.
var defaultPolicies = [][]string{
	{"role:staff", ObjSalary, ActRead},
	{"role:staff", ObjProfitFund, ActRead},
	{"role:staff", ObjWithdrawal, ActRequest},
	{"role:staff", ObjWithdrawal, ActRead},

	{"role:accountant", ObjSalary, ActCreate},
	{"role:accountant", ObjSalary, ActEdit},
	{"role:accountant", ObjSalary, ActApprove},
	{"role:accountant", ObjSalary, ActRevert},
	{"role:accountant", ObjSalary, ActMarkPaid},
	{"role:accountant", ObjSalary, ActDelete},
	{"role:accountant", ObjWithdrawal, ActApprove},
	{"role:accountant", ObjWithdrawal, ActReject},
	{"role:accountant", ObjWithdrawal, ActMarkPaid},
	{"role:accountant", ObjProfitFund, ActReconcile},
	{"role:accountant", ObjUser, ActRead},

	{"role:admin", ObjProfitFund, ActActivate},
	{"role:admin", ObjProfitFund, ActClose},
	{"role:admin", ObjProfitFund, ActSet},
	{"role:admin", ObjUser, ActCreate},
	{"role:admin", ObjUser, ActUpdate},
	{"role:admin", ObjUser, ActDelete},
}

var defaultGroupings = [][]string{
	{"role:accountant", "role:staff"},
	{"role:admin", "role:accountant"},
	{"role:superadmin", "role:admin"},
}

type Authorizer struct {
	enforcer *casbin.Enforcer
	mode     Mode
}

// NewAuthorizer builds an enforcer over the built-in RBAC model. With an empty
// policyPath the built-in policy is loaded; otherwise policies come from that CSV file.
func NewAuthorizer(policyPath string, mode Mode) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}

	if policyPath != "" {
		enforcer, err := casbin.NewEnforcer(m, fileadapter.NewAdapter(policyPath))
		if err != nil {
			return nil, fmt.Errorf("authz: load policy file: %w", err)
		}
		return &Authorizer{enforcer: enforcer, mode: mode}, nil
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: new enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("authz: add policies: %w", err)
	}
	for _, g := range defaultGroupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("authz: add grouping %v: %w", g, err)
		}
	}
	return &Authorizer{enforcer: enforcer, mode: mode}, nil
}

func SubjectFromRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}

// Authorize reports whether role may perform action on object. In shadow mode
// the decision is computed but enforced is false and callers should let the request through.
func (a *Authorizer) Authorize(role string, object string, action string) (allowed bool, enforced bool, err error) {
	ok, err := a.enforcer.Enforce(SubjectFromRole(role), object, action)
	switch a.mode {
	case ModeShadow:
		return ok, false, err
	case ModeEnforce:
		return ok, true, err
	default:
		return false, false, errors.New("authz: unknown mode")
	}
}
