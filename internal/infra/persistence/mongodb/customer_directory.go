package mongodb

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"glowbeauty/internal/domain/entity"
	"glowbeauty/internal/domain/repository"
)

const customersCollection = "customers"

// customerModel is the document shape persisted for a credential record.
// The sequential account id doubles as the document key, so a racing
// duplicate insert fails on the unique _id instead of overwriting.
type customerModel struct {
	ID            int64      `bson:"_id"`
	Name          string     `bson:"name"`
	Email         string     `bson:"email"`
	PasswordHash  string     `bson:"passwordHash"`
	EmailVerified bool       `bson:"emailVerified"`
	LastLoginAt   *time.Time `bson:"lastLoginAt,omitempty"`
	RefreshToken  string     `bson:"refreshToken"`
	OrderCount    int        `bson:"orderCount"`
	TotalSpent    float64    `bson:"totalSpent"`
	CreatedAt     time.Time  `bson:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt"`
}

func fromCustomerDomain(customer *entity.Customer) *customerModel {
	return &customerModel{
		ID:            customer.ID,
		Name:          customer.Name,
		Email:         customer.Email,
		PasswordHash:  customer.PasswordHash,
		EmailVerified: customer.EmailVerified,
		LastLoginAt:   customer.LastLoginAt,
		RefreshToken:  customer.RefreshToken,
		OrderCount:    customer.OrderCount,
		TotalSpent:    customer.TotalSpent,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}
}

func toCustomerDomain(model *customerModel) *entity.Customer {
	return &entity.Customer{
		ID:            model.ID,
		Name:          model.Name,
		Email:         model.Email,
		PasswordHash:  model.PasswordHash,
		EmailVerified: model.EmailVerified,
		LastLoginAt:   model.LastLoginAt,
		RefreshToken:  model.RefreshToken,
		OrderCount:    model.OrderCount,
		TotalSpent:    model.TotalSpent,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// customerDirectory implements the repository.CustomerDirectory interface.
type customerDirectory struct {
	coll *mongo.Collection
}

// DirectoryParams holds dependencies for the customer directory, injected by Fx.
type DirectoryParams struct {
	fx.In
	fx.Lifecycle

	Database *mongo.Database
}

// NewCustomerDirectory is the constructor for customerDirectory. The
// unique email index backing registration uniqueness is created on start.
func NewCustomerDirectory(params DirectoryParams) repository.CustomerDirectory {
	directory := &customerDirectory{
		coll: params.Database.Collection(customersCollection),
	}

	params.Append(fx.Hook{
		OnStart: directory.ensureIndexes,
	})

	return directory
}

func (d *customerDirectory) ensureIndexes(ctx context.Context) error {
	_, err := d.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "refreshToken", Value: 1}},
		},
	})

	return errors.Wrap(err, "create customer indexes")
}

// FindByID retrieves a single customer by their account id.
func (d *customerDirectory) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail retrieves a single customer by case-normalized email.
func (d *customerDirectory) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return d.findOne(ctx, bson.M{"email": normalizeEmail(email)})
}

// FindByRefreshToken retrieves the customer whose stored refresh token
// equals the presented one. Superseded tokens match nothing.
func (d *customerDirectory) FindByRefreshToken(ctx context.Context, token string) (*entity.Customer, error) {
	if token == "" {
		// An empty token must never match logged-out records.
		return nil, repository.ErrCustomerNotFound
	}

	return d.findOne(ctx, bson.M{"refreshToken": token})
}

// Create persists a new customer record, assigning the next sequential
// account id (max existing + 1, starting at 1).
func (d *customerDirectory) Create(ctx context.Context, customer *entity.Customer) error {
	now := time.Now()
	customer.Email = normalizeEmail(customer.Email)
	customer.CreatedAt = now
	customer.UpdatedAt = now

	// Id assignment races with concurrent registrations; the unique _id
	// turns the race into a retriable duplicate-key error.
	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id, err := d.nextAccountID(ctx)
		if err != nil {
			return err
		}
		customer.ID = id

		_, err = d.coll.InsertOne(ctx, fromCustomerDomain(customer))
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return errors.Wrap(err, "insert customer")
		}

		if _, ferr := d.FindByEmail(ctx, customer.Email); ferr == nil {
			return repository.ErrDuplicateAccount
		}
		// Lost the id race; pick a fresh id and retry.
	}

	return errors.Errorf("could not assign a free account id after %d attempts", maxAttempts)
}

func (d *customerDirectory) nextAccountID(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetProjection(bson.M{"_id": 1})

	var latest struct {
		ID int64 `bson:"_id"`
	}
	err := d.coll.FindOne(ctx, bson.D{}, opts).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 1, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "find highest account id")
	}

	return latest.ID + 1, nil
}

// SetRefreshToken overwrites the stored refresh token unconditionally.
func (d *customerDirectory) SetRefreshToken(ctx context.Context, id int64, token string) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{"refreshToken": token})
}

// RotateRefreshToken atomically replaces the stored refresh token only if
// it still equals expectedOld. The single conditional update closes the
// window between lookup and write that two racing refreshes would
// otherwise exploit.
func (d *customerDirectory) RotateRefreshToken(ctx context.Context, id int64, newToken, expectedOld string) error {
	filter := bson.M{"_id": id, "refreshToken": expectedOld}
	update := bson.M{"$set": bson.M{"refreshToken": newToken, "updatedAt": time.Now()}}

	result, err := d.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "rotate refresh token")
	}
	if result.MatchedCount == 0 {
		return repository.ErrStaleRefreshToken
	}

	return nil
}

// ClearRefreshToken removes the stored refresh token. Clearing an
// already-empty field matches the document and is a no-op.
func (d *customerDirectory) ClearRefreshToken(ctx context.Context, id int64) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{"refreshToken": ""})
}

// UpdateLastLogin stamps the record with the current time.
func (d *customerDirectory) UpdateLastLogin(ctx context.Context, id int64) error {
	return d.updateOne(ctx, bson.M{"_id": id}, bson.M{"lastLoginAt": time.Now()})
}

func (d *customerDirectory) findOne(ctx context.Context, filter bson.M) (*entity.Customer, error) {
	model := &customerModel{}
	err := d.coll.FindOne(ctx, filter).Decode(model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrCustomerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find customer")
	}

	return toCustomerDomain(model), nil
}

func (d *customerDirectory) updateOne(ctx context.Context, filter bson.M, set bson.M) error {
	set["updatedAt"] = time.Now()

	result, err := d.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return errors.Wrap(err, "update customer")
	}
	if result.MatchedCount == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
