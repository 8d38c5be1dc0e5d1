package sqlite

import (
	"context"
	"database/sql"

	"github.com/teyroberto/agenda/internal/agenda/domain"
)

type contactsRepo struct {
	db querier
}

const contactColumns = `id, owner_id, name, phone, email, created_at, updated_at`

func (r *contactsRepo) ListContactsByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE owner_id = ?
		 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contactsRepo) GetContactByName(ctx context.Context, ownerID, normalizedName string) (domain.Contact, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE owner_id = ? AND name_normalized = ?`, ownerID, normalizedName)
	return scanContact(row)
}

func (r *contactsRepo) CreateContact(ctx context.Context, c domain.Contact) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contacts (id, owner_id, name, name_normalized, phone, email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Name, domain.NormalizeContactName(c.Name),
		c.Phone, mapStringNull(c.Email), c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *contactsRepo) UpdateContact(ctx context.Context, c domain.Contact) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contacts
		 SET name = ?, name_normalized = ?, phone = ?, email = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, domain.NormalizeContactName(c.Name), c.Phone,
		mapStringNull(c.Email), c.UpdatedAt, c.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *contactsRepo) DeleteContact(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func scanContact(row rowScanner) (domain.Contact, error) {
	var (
		c     domain.Contact
		email sql.NullString
	)
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Contact{}, mapNotFound(err)
	}
	c.Email = mapNullString(email)
	return c, nil
}
