package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// The model is embedded: the system has exactly two roles driven by the
// is_admin flag, so policies are static and never loaded from storage.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

var policies = [][]string{
	{RoleAdmin, "*", "*"},
	{RoleEmployee, "leaves", "read"},
	{RoleEmployee, "leaves", "create"},
	{RoleEmployee, "assistant", "use"},
}

type Service interface {
	Can(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := enforcer.AddGroupingPolicy(RoleAdmin, RoleEmployee); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Can(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

// RoleFor maps the persisted admin flag to a policy subject.
func RoleFor(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleEmployee
}
