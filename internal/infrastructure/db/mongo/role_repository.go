package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketsquare/marketplace-api/internal/api/metrics"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

const collectionRoles = "roles"

// RoleRepository persists roles and implements the role-delete cascade
// policy. With cascadeUsers enabled, deleting a role deletes every user
// holding it — and, with cascadeProducts also enabled, transitively their
// admin/seller products. High blast radius; both toggles live in config.
type RoleRepository struct {
	roles           *mongo.Collection
	users           *mongo.Collection
	products        *mongo.Collection
	cascadeUsers    bool
	cascadeProducts bool
}

func NewRoleRepository(db *mongo.Database, cascadeUsers, cascadeProducts bool) *RoleRepository {
	return &RoleRepository{
		roles:           db.Collection(collectionRoles),
		users:           db.Collection(collectionUsers),
		products:        db.Collection(collectionProducts),
		cascadeUsers:    cascadeUsers,
		cascadeProducts: cascadeProducts,
	}
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if role.ID == "" {
		role.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.roles.InsertOne(ctx, role); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}
	return role, nil
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var role domain.Role
	err := r.roles.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.roles.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var roles []*domain.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.roles.ReplaceOne(ctx, bson.M{"_id": role.ID}, role)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if r.cascadeUsers {
		if err := r.cascadeDeleteUsers(ctx, id); err != nil {
			return err
		}
	}

	res, err := r.roles.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// cascadeDeleteUsers removes every user holding the role, applying the same
// product cascade a direct user delete would.
func (r *RoleRepository) cascadeDeleteUsers(ctx context.Context, roleID string) error {
	cur, err := r.users.Find(ctx, bson.M{"role_id": roleID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var refs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &refs); err != nil {
		return err
	}
	if len(refs) == 0 {
		return nil
	}

	ids := make(bson.A, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	if r.cascadeProducts {
		res, err := r.products.DeleteMany(ctx, bson.M{
			"$or": bson.A{
				bson.M{"admin_id": bson.M{"$in": ids}},
				bson.M{"seller_id": bson.M{"$in": ids}},
			},
		})
		if err != nil {
			return err
		}
		metrics.CascadeDeletesTotal.WithLabelValues("product").Add(float64(res.DeletedCount))
	}

	if _, err := r.products.UpdateMany(ctx,
		bson.M{"client_id": bson.M{"$in": ids}},
		bson.M{"$unset": bson.M{"client_id": ""}},
	); err != nil {
		return err
	}

	res, err := r.users.DeleteMany(ctx, bson.M{"role_id": roleID})
	if err != nil {
		return err
	}
	metrics.CascadeDeletesTotal.WithLabelValues("user").Add(float64(res.DeletedCount))
	return nil
}

// EnsureIndexes creates the unique role name index.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.roles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
