// Package view implements the view-tiered serialization layer: a static
// registry of named field subsets per entity type, and a projector that
// renders an entity (or entity graph) through one of those views with
// relationship traversal bounded to a single hop.
package view

import (
	"errors"
	"fmt"
)

// EntityKind identifies the entity type a view applies to.
type EntityKind string

const (
	KindGeneric EntityKind = "generic"
	KindUser    EntityKind = "user"
	KindRole    EntityKind = "role"
	KindProduct EntityKind = "product"
)

// Name identifies a registered view.
type Name string

// Generic lattice. These carry no fields of their own; they anchor the
// shared Basic/Summary/Detail tiers and the separate Public branch.
const (
	Basic   Name = "Basic"
	Summary Name = "Summary"
	Detail  Name = "Detail"
	Public  Name = "Public"
)

// User views. Password belongs to no view, including UserDetail; that is a
// permanent security invariant, not an omission.
const (
	UserBasic   Name = "UserBasic"
	UserSummary Name = "UserSummary"
	UserDetail  Name = "UserDetail"
	UserList    Name = "UserList" // same fields as UserBasic, distinct identity
)

// Role views.
const (
	RoleBasic     Name = "RoleBasic"
	RoleWithUsers Name = "RoleWithUsers"
	RoleDetail    Name = "RoleDetail" // no fields beyond RoleWithUsers
)

// Product views.
const (
	ProductBasic   Name = "ProductBasic"
	ProductSummary Name = "ProductSummary"
	ProductDetail  Name = "ProductDetail"
	ProductList    Name = "ProductList"    // sibling of ProductSummary
	ProductCatalog Name = "ProductCatalog" // public-safe sibling
)

// FieldKind distinguishes how a field is rendered.
type FieldKind int

const (
	// Scalar fields are copied verbatim.
	Scalar FieldKind = iota
	// Relation fields hold a single related entity id, rendered as a nested
	// projection at the reduced tier.
	Relation
	// Collection fields are reverse lookups rendered as a list of nested
	// projections at the reduced tier.
	Collection
)

// Field describes one entry of a resolved view: its output name, how it is
// rendered, and — for relations — the target entity type and the reduced
// tier used for the nested projection. The nested tier is always shallower
// than the root view, which is what keeps User↔Product cycles from
// re-expanding.
type Field struct {
	Name   string
	Kind   FieldKind
	Target EntityKind
	Nested Name
}

func scalar(name string) Field {
	return Field{Name: name, Kind: Scalar}
}

func relation(name string, target EntityKind, nested Name) Field {
	return Field{Name: name, Kind: Relation, Target: target, Nested: nested}
}

func collection(name string, target EntityKind, nested Name) Field {
	return Field{Name: name, Kind: Collection, Target: target, Nested: nested}
}

// descriptor declares one view: its entity type, single parent, and own
// fields. A resolved view's field set is the parent's set plus its own, in
// declaration order. Redeclaring an inherited field name replaces that
// field in place — used by deeper tiers to widen the reduced tier of a
// relation without introducing new fields.
type descriptor struct {
	entity EntityKind
	name   Name
	parent Name
	fields []Field
}

// table is the whole view hierarchy. It is the single source of truth;
// resolution happens once at package init and never at request time.
var table = []descriptor{
	// Generic lattice.
	{entity: KindGeneric, name: Basic},
	{entity: KindGeneric, name: Summary, parent: Basic},
	{entity: KindGeneric, name: Detail, parent: Summary},
	{entity: KindGeneric, name: Public, parent: Basic},

	// User. The Detail tier adds the product back-references; those are
	// rendered at ProductBasic, which holds no relations, so a user's
	// products can never re-expand into users again.
	{entity: KindUser, name: UserBasic, fields: []Field{
		scalar("id"),
		scalar("email"),
	}},
	{entity: KindUser, name: UserSummary, parent: UserBasic, fields: []Field{
		relation("role", KindRole, RoleBasic),
	}},
	{entity: KindUser, name: UserDetail, parent: UserSummary, fields: []Field{
		collection("adminProducts", KindProduct, ProductBasic),
		collection("sellerProducts", KindProduct, ProductBasic),
		collection("clientProducts", KindProduct, ProductBasic),
	}},
	{entity: KindUser, name: UserList, parent: UserBasic},

	// Role.
	{entity: KindRole, name: RoleBasic, fields: []Field{
		scalar("id"),
		scalar("name"),
	}},
	{entity: KindRole, name: RoleWithUsers, parent: RoleBasic, fields: []Field{
		collection("users", KindUser, UserBasic),
	}},
	{entity: KindRole, name: RoleDetail, parent: RoleWithUsers},

	// Product. Summary renders its users at UserBasic; Detail keeps the same
	// field set but widens the nested tier to UserSummary so the role shows.
	// Neither tier ever reaches UserDetail — that is the cycle-breaking rule.
	{entity: KindProduct, name: ProductBasic, fields: []Field{
		scalar("id"),
		scalar("name"),
		scalar("price"),
		scalar("description"),
		scalar("stock"),
	}},
	{entity: KindProduct, name: ProductSummary, parent: ProductBasic, fields: []Field{
		relation("admin", KindUser, UserBasic),
		relation("seller", KindUser, UserBasic),
		relation("client", KindUser, UserBasic),
	}},
	{entity: KindProduct, name: ProductDetail, parent: ProductSummary, fields: []Field{
		relation("admin", KindUser, UserSummary),
		relation("seller", KindUser, UserSummary),
		relation("client", KindUser, UserSummary),
	}},
	{entity: KindProduct, name: ProductList, parent: ProductBasic},
	{entity: KindProduct, name: ProductCatalog, parent: ProductBasic},
}

// ErrUnknownView is returned when a view name is not registered for an
// entity type. Hitting it at request time is a programming error; complete
// registration makes it unreachable.
var ErrUnknownView = errors.New("view: unknown view")

type viewKey struct {
	entity EntityKind
	name   Name
}

var resolved map[viewKey][]Field

func init() {
	resolved = make(map[viewKey][]Field, len(table))
	for _, d := range table {
		key := viewKey{d.entity, d.name}
		if _, dup := resolved[key]; dup {
			panic(fmt.Sprintf("view: duplicate declaration of %s/%s", d.entity, d.name))
		}

		var fields []Field
		if d.parent != "" {
			parent, ok := resolved[viewKey{d.entity, d.parent}]
			if !ok && d.entity != KindGeneric {
				// Entity roots may not hang off the generic lattice directly;
				// parents must be declared before children within the entity.
				parent, ok = resolved[viewKey{KindGeneric, d.parent}]
			}
			if !ok {
				panic(fmt.Sprintf("view: %s/%s declares unknown parent %s", d.entity, d.name, d.parent))
			}
			fields = append(fields, parent...)
		}
		for _, f := range d.fields {
			if replaced := replaceField(fields, f); replaced {
				continue
			}
			fields = append(fields, f)
		}
		resolved[key] = fields
	}
}

// replaceField swaps an inherited field for its redeclaration, preserving
// position. Returns false when the name is new.
func replaceField(fields []Field, f Field) bool {
	for i := range fields {
		if fields[i].Name == f.Name {
			fields[i] = f
			return true
		}
	}
	return false
}

// Resolve returns the ordered field set of a registered view. An unknown
// view is a configuration fault, reported as ErrUnknownView.
func Resolve(entity EntityKind, name Name) ([]Field, error) {
	fields, ok := resolved[viewKey{entity, name}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownView, entity, name)
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out, nil
}

// MustResolve is Resolve for wiring-time use; it panics on unknown views so
// misconfiguration fails loudly at startup instead of degrading to a
// default view.
func MustResolve(entity EntityKind, name Name) []Field {
	fields, err := Resolve(entity, name)
	if err != nil {
		panic(err)
	}
	return fields
}

// Names returns every registered view name for an entity type.
func Names(entity EntityKind) []Name {
	var names []Name
	for _, d := range table {
		if d.entity == entity {
			names = append(names, d.name)
		}
	}
	return names
}
