package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"

	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, phone, name, roles, address, shop_details, provider_details, farmer_details, operator_details, labour_details, is_verified, verification_status, created_on, updated_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	addr, err := jsonbOf(u.Address)
	if err != nil {
		return err
	}
	now := time.Now()
	query := `INSERT INTO users (email, password_hash, phone, name, roles, address, is_verified, verification_status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.Phone, u.Name, pq.Array(rolesToStrings(u.Roles)),
		addr, u.IsVerified, u.VerificationStatus, now, now).Scan(&u.ID)
	if err != nil {
		return err
	}
	u.CreatedOn = now
	u.UpdatedOn = now
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	addr, err := jsonbOf(u.Address)
	if err != nil {
		return err
	}
	shop, err := jsonbOf(u.ShopDetails)
	if err != nil {
		return err
	}
	provider, err := jsonbOf(u.ProviderDetails)
	if err != nil {
		return err
	}
	farmer, err := jsonbOf(u.FarmerDetails)
	if err != nil {
		return err
	}
	operator, err := jsonbOf(u.OperatorDetails)
	if err != nil {
		return err
	}
	labour, err := jsonbOf(u.LabourDetails)
	if err != nil {
		return err
	}
	query := `UPDATE users SET phone=$1, name=$2, roles=$3, address=$4, shop_details=$5, provider_details=$6, farmer_details=$7, operator_details=$8, labour_details=$9, is_verified=$10, verification_status=$11, updated_on=$12 WHERE id=$13`
	_, err = r.db.ExecContext(ctx, query,
		u.Phone, u.Name, pq.Array(rolesToStrings(u.Roles)),
		addr, shop, provider, farmer, operator, labour,
		u.IsVerified, u.VerificationStatus, time.Now(), u.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	query := `UPDATE users SET password_hash=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("user not found")
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var roles []string
	var addr, shop, provider, farmer, operator, labour []byte
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Phone, &u.Name, pq.Array(&roles),
		&addr, &shop, &provider, &farmer, &operator, &labour,
		&u.IsVerified, &u.VerificationStatus, &u.CreatedOn, &u.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("user not found")
	}
	if err != nil {
		return nil, err
	}
	u.Roles = stringsToRoles(roles)
	if err := scanJSONB(addr, &u.Address); err != nil {
		return nil, err
	}
	if err := scanJSONB(shop, &u.ShopDetails); err != nil {
		return nil, err
	}
	if err := scanJSONB(provider, &u.ProviderDetails); err != nil {
		return nil, err
	}
	if err := scanJSONB(farmer, &u.FarmerDetails); err != nil {
		return nil, err
	}
	if err := scanJSONB(operator, &u.OperatorDetails); err != nil {
		return nil, err
	}
	if err := scanJSONB(labour, &u.LabourDetails); err != nil {
		return nil, err
	}
	return u, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func stringsToRoles(roles []string) []domain.Role {
	out := make([]domain.Role, len(roles))
	for i, r := range roles {
		out[i] = domain.Role(r)
	}
	return out
}
