package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// Source resolves entity ids to entities and reverse relations to entity
// lists. The projector pulls related entities through it on demand instead
// of walking an in-memory object graph.
type Source interface {
	UserByID(ctx context.Context, id string) (*domain.User, error)
	RoleByID(ctx context.Context, id string) (*domain.Role, error)
	UsersByRole(ctx context.Context, roleID string) ([]*domain.User, error)
	ProductsByAdmin(ctx context.Context, userID string) ([]*domain.Product, error)
	ProductsBySeller(ctx context.Context, userID string) ([]*domain.Product, error)
	ProductsByClient(ctx context.Context, userID string) ([]*domain.Product, error)
}

// relationDepthLimit caps how deep nested projections may reach. Depth 0 is
// the root entity, depth 1 its relations, depth 2 the scalar-only tail
// (e.g. product → admin → role). Relations and collections at the limit are
// cut off unconditionally, whatever view combination is requested.
const relationDepthLimit = 2

// Projector renders entities through registered views. Output maps contain
// exactly the resolved fields: scalars verbatim, relations as reduced-tier
// nested projections (explicit nil when unset), collections as lists that
// are empty rather than null.
type Projector struct {
	src Source
}

func NewProjector(src Source) *Projector {
	return &Projector{src: src}
}

// User projects a single user. A nil user yields a nil map, not an error.
func (p *Projector) User(ctx context.Context, u *domain.User, name Name) (map[string]any, error) {
	if u == nil {
		return nil, nil
	}
	return p.project(ctx, KindUser, u, name, 0)
}

// Users projects a homogeneous user list. A nil slice yields an empty list.
func (p *Projector) Users(ctx context.Context, users []*domain.User, name Name) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		m, err := p.User(ctx, u, name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Role projects a single role.
func (p *Projector) Role(ctx context.Context, r *domain.Role, name Name) (map[string]any, error) {
	if r == nil {
		return nil, nil
	}
	return p.project(ctx, KindRole, r, name, 0)
}

// Roles projects a role list.
func (p *Projector) Roles(ctx context.Context, roles []*domain.Role, name Name) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(roles))
	for _, r := range roles {
		m, err := p.Role(ctx, r, name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Product projects a single product.
func (p *Projector) Product(ctx context.Context, pr *domain.Product, name Name) (map[string]any, error) {
	if pr == nil {
		return nil, nil
	}
	return p.project(ctx, KindProduct, pr, name, 0)
}

// Products projects a product list.
func (p *Projector) Products(ctx context.Context, products []*domain.Product, name Name) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(products))
	for _, pr := range products {
		m, err := p.Product(ctx, pr, name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (p *Projector) project(ctx context.Context, kind EntityKind, entity any, name Name, depth int) (map[string]any, error) {
	fields, err := Resolve(kind, name)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f.Kind {
		case Scalar:
			v, err := scalarValue(kind, entity, f.Name)
			if err != nil {
				return nil, err
			}
			out[f.Name] = v

		case Relation:
			if depth >= relationDepthLimit {
				continue
			}
			nested, err := p.projectRelation(ctx, kind, entity, f, depth)
			if err != nil {
				return nil, err
			}
			out[f.Name] = nested

		case Collection:
			// Collections only expand on the root entity; anything deeper
			// would reopen the User↔Product cycle.
			if depth > 0 {
				continue
			}
			list, err := p.projectCollection(ctx, kind, entity, f)
			if err != nil {
				return nil, err
			}
			out[f.Name] = list
		}
	}
	return out, nil
}

// projectRelation renders a single-entity relation at its reduced tier. An
// unset reference and a dangling reference both render as explicit nil.
func (p *Projector) projectRelation(ctx context.Context, kind EntityKind, entity any, f Field, depth int) (any, error) {
	id, err := relationID(kind, entity, f.Name)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	switch f.Target {
	case KindUser:
		u, err := p.src.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return p.project(ctx, KindUser, u, f.Nested, depth+1)
	case KindRole:
		r, err := p.src.RoleByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return p.project(ctx, KindRole, r, f.Nested, depth+1)
	default:
		return nil, fmt.Errorf("view: relation %s/%s targets unsupported kind %s", kind, f.Name, f.Target)
	}
}

// projectCollection renders a reverse-lookup collection at its reduced tier.
func (p *Projector) projectCollection(ctx context.Context, kind EntityKind, entity any, f Field) ([]map[string]any, error) {
	var (
		users    []*domain.User
		products []*domain.Product
		err      error
	)

	switch {
	case kind == KindUser && f.Name == "adminProducts":
		products, err = p.src.ProductsByAdmin(ctx, entity.(*domain.User).ID)
	case kind == KindUser && f.Name == "sellerProducts":
		products, err = p.src.ProductsBySeller(ctx, entity.(*domain.User).ID)
	case kind == KindUser && f.Name == "clientProducts":
		products, err = p.src.ProductsByClient(ctx, entity.(*domain.User).ID)
	case kind == KindRole && f.Name == "users":
		users, err = p.src.UsersByRole(ctx, entity.(*domain.Role).ID)
	default:
		return nil, fmt.Errorf("view: unknown collection %s/%s", kind, f.Name)
	}
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(users)+len(products))
	for _, u := range users {
		m, err := p.project(ctx, KindUser, u, f.Nested, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	for _, pr := range products {
		m, err := p.project(ctx, KindProduct, pr, f.Nested, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// scalarValue copies one scalar field verbatim. Password is not reachable
// here: no registered view declares it, and no case exists for it.
func scalarValue(kind EntityKind, entity any, field string) (any, error) {
	switch kind {
	case KindUser:
		u := entity.(*domain.User)
		switch field {
		case "id":
			return u.ID, nil
		case "email":
			return u.Email, nil
		}
	case KindRole:
		r := entity.(*domain.Role)
		switch field {
		case "id":
			return r.ID, nil
		case "name":
			return r.Name, nil
		}
	case KindProduct:
		pr := entity.(*domain.Product)
		switch field {
		case "id":
			return pr.ID, nil
		case "name":
			return pr.Name, nil
		case "price":
			return pr.Price, nil
		case "description":
			return pr.Description, nil
		case "stock":
			return pr.Stock, nil
		}
	}
	return nil, fmt.Errorf("view: no scalar %s on %s", field, kind)
}

// relationID extracts the id a relation field points at.
func relationID(kind EntityKind, entity any, field string) (string, error) {
	switch kind {
	case KindUser:
		if field == "role" {
			return entity.(*domain.User).RoleID, nil
		}
	case KindProduct:
		pr := entity.(*domain.Product)
		switch field {
		case "admin":
			return pr.AdminID, nil
		case "seller":
			return pr.SellerID, nil
		case "client":
			return pr.ClientID, nil
		}
	}
	return "", fmt.Errorf("view: no relation %s on %s", field, kind)
}
