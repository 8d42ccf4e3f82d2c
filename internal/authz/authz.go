package authz

import (
	"reflect"
	"strings"
)

// Operation is an action attempted on a resource.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationRead   Operation = "read"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Failed Decision = iota
	Succeeded
)

// Succeeded reports whether the decision grants access.
func (d Decision) Succeeded() bool {
	return d == Succeeded
}

func (d Decision) String() string {
	if d == Succeeded {
		return "allow"
	}
	return "deny"
}

// Resource is anything owned by a principal.
type Resource interface {
	OwnerID() int
}

// Principal is the authenticated caller of a request.
type Principal struct {
	id     int
	roles  []string
	claims map[string]string
}

// NewPrincipal builds a principal. Roles and claims are copied.
func NewPrincipal(id int, roles []string, claims map[string]string) Principal {
	p := Principal{id: id}
	if len(roles) > 0 {
		p.roles = append([]string(nil), roles...)
	}
	if len(claims) > 0 {
		p.claims = make(map[string]string, len(claims))
		for k, v := range claims {
			p.claims[k] = v
		}
	}
	return p
}

// ID returns the principal identifier.
func (p Principal) ID() int { return p.id }

// Roles returns a copy of the principal's roles.
func (p Principal) Roles() []string {
	return append([]string(nil), p.roles...)
}

// HasRole reports whether the principal carries the role, ignoring case.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// Claim returns an attribute claim such as "nationality".
func (p Principal) Claim(name string) (string, bool) {
	v, ok := p.claims[name]
	return v, ok
}

// Authorize decides whether principal may perform op on resource. Reads are
// always allowed; any other operation requires ownership. The decision is
// computed from the arguments alone and must be re-evaluated on every call.
func Authorize(principal Principal, resource Resource, op Operation) Decision {
	if op == OperationRead {
		return Succeeded
	}
	if isNil(resource) {
		return Failed
	}
	owner := resource.OwnerID()
	if owner >= 0 && owner == principal.ID() {
		return Succeeded
	}
	return Failed
}

// isNil also catches a nil pointer stored in a non-nil interface.
func isNil(resource Resource) bool {
	if resource == nil {
		return true
	}
	v := reflect.ValueOf(resource)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
