// Package seed populates a development database with the Woodhurst House
// sample data: one staff account, the property record and its full rent
// schedule.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/shelterdesk/shelterdesk/internal/dashboard"
	"github.com/shelterdesk/shelterdesk/internal/platform/db"
	"github.com/shelterdesk/shelterdesk/internal/rentschedule"
)

// DefaultAdminEmail is the seeded staff login.
const DefaultAdminEmail = "admin@shelterdesk.local"

// Run seeds the staff account, sample properties, the Woodhurst rent schedule
// and a default dashboard layout. It is idempotent: re-running overwrites the
// sample rows.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	userID, err := seedUsers(ctx, pool)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := seedSchedule(ctx, pool, rentschedule.WoodhurstFixture()); err != nil {
		return fmt.Errorf("seed schedule: %w", err)
	}
	if err := seedDashboard(ctx, pool, userID); err != nil {
		return fmt.Errorf("seed dashboard: %w", err)
	}
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme-now"), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	var id int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, $4, $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, is_active = TRUE, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		DefaultAdminEmail, "ShelterDesk Admin", string(hash), now,
	).Scan(&id)
	return id, err
}

func seedDashboard(ctx context.Context, pool *pgxpool.Pool, userID int64) error {
	layout, err := json.Marshal(dashboard.DefaultLayout())
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO dashboard_layouts (user_id, layout, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET layout = EXCLUDED.layout, updated_at = EXCLUDED.updated_at`,
		strconv.FormatInt(userID, 10), layout, time.Now().UTC(),
	)
	return err
}

func seedSchedule(ctx context.Context, pool *pgxpool.Pool, doc rentschedule.Document) error {
	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return insertSchedule(ctx, tx, doc)
	})
}

func insertSchedule(ctx context.Context, tx pgx.Tx, doc rentschedule.Document) error {
	now := time.Now().UTC()
	_, err := tx.Exec(ctx, `
		INSERT INTO properties (id, code, name, scheme_type, address, units, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at`,
		doc.PropertyID, "WH01", doc.PropertyName, "Supported housing",
		"14 Woodhurst Lane", 12, "12-unit supported scheme", now,
	)
	if err != nil {
		return err
	}

	// Second demo property with no schedule yet, so the Property Hub list has
	// more than one row.
	_, err = tx.Exec(ctx, `
		INSERT INTO properties (id, code, name, scheme_type, address, units, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at`,
		doc.PropertyID+1, "MF02", "Mansfield Court", "Supported housing",
		"3 Mansfield Road", 8, "8-unit scheme, schedule pending", now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rent_schedules (property_id, core_rent_weekly, service_charges_weekly, ineligible_weekly,
		                            gross_weekly_rent, eligible_for_hb, ineligible_for_hb, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (property_id) DO UPDATE SET
			core_rent_weekly = EXCLUDED.core_rent_weekly,
			service_charges_weekly = EXCLUDED.service_charges_weekly,
			ineligible_weekly = EXCLUDED.ineligible_weekly,
			gross_weekly_rent = EXCLUDED.gross_weekly_rent,
			eligible_for_hb = EXCLUDED.eligible_for_hb,
			ineligible_for_hb = EXCLUDED.ineligible_for_hb,
			updated_at = EXCLUDED.updated_at`,
		doc.PropertyID,
		doc.Totals.CoreRentWeekly, doc.Totals.ServiceChargesWeekly, doc.Totals.IneligibleWeekly,
		doc.Totals.GrossWeeklyRent, doc.Totals.EligibleForHB, doc.Totals.IneligibleForHB, now,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM rent_schedule_items WHERE property_id = $1`, doc.PropertyID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM rent_schedule_sections WHERE property_id = $1`, doc.PropertyID); err != nil {
		return err
	}

	for _, section := range doc.Sections.All() {
		_, err = tx.Exec(ctx, `
			INSERT INTO rent_schedule_sections (property_id, section_type, title, easy_read_title, subtotal)
			VALUES ($1, $2, $3, $4, $5)`,
			doc.PropertyID, string(section.Type), section.Title, section.EasyReadTitle, section.Subtotal,
		)
		if err != nil {
			return err
		}
		for position, item := range section.Items {
			_, err = tx.Exec(ctx, `
				INSERT INTO rent_schedule_items (id, property_id, section_type, position, label, amount,
				                                 description, easy_read_description, category, calculation,
				                                 is_void_cover, void_percentage)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				item.ID, doc.PropertyID, string(section.Type), position, item.Label, item.Amount,
				item.Description, item.EasyReadDescription, string(item.Category), item.Calculation,
				item.IsVoidCover, item.VoidPercentage,
			)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
