package rentschedule

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelterdesk/shelterdesk/internal/shared"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed schedule repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Document(ctx context.Context, propertyID int64) (Document, error) {
	doc := Document{PropertyID: propertyID}

	const propertyQuery = `SELECT name FROM properties WHERE id = $1`
	if err := r.db.QueryRow(ctx, propertyQuery, propertyID).Scan(&doc.PropertyName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, shared.ErrNotFound
		}
		return Document{}, err
	}

	const totalsQuery = `
		SELECT core_rent_weekly, service_charges_weekly, ineligible_weekly,
		       gross_weekly_rent, eligible_for_hb, ineligible_for_hb
		FROM rent_schedules WHERE property_id = $1`
	err := r.db.QueryRow(ctx, totalsQuery, propertyID).Scan(
		&doc.Totals.CoreRentWeekly,
		&doc.Totals.ServiceChargesWeekly,
		&doc.Totals.IneligibleWeekly,
		&doc.Totals.GrossWeeklyRent,
		&doc.Totals.EligibleForHB,
		&doc.Totals.IneligibleForHB,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, shared.ErrNotFound
		}
		return Document{}, err
	}

	const sectionsQuery = `
		SELECT section_type, title, easy_read_title, subtotal
		FROM rent_schedule_sections WHERE property_id = $1`
	rows, err := r.db.Query(ctx, sectionsQuery, propertyID)
	if err != nil {
		return Document{}, err
	}
	defer rows.Close()

	sections := make(map[SectionType]*Section, 3)
	for rows.Next() {
		var section Section
		var sectionType string
		if err := rows.Scan(&sectionType, &section.Title, &section.EasyReadTitle, &section.Subtotal); err != nil {
			return Document{}, err
		}
		section.ID = SectionType(sectionType)
		section.Type = section.ID
		sections[section.Type] = &section
	}
	if err := rows.Err(); err != nil {
		return Document{}, err
	}

	const itemsQuery = `
		SELECT id, section_type, label, amount, description, easy_read_description,
		       category, calculation, is_void_cover, void_percentage
		FROM rent_schedule_items
		WHERE property_id = $1
		ORDER BY section_type, position`
	itemRows, err := r.db.Query(ctx, itemsQuery, propertyID)
	if err != nil {
		return Document{}, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item LineItem
		var sectionType, category string
		if err := itemRows.Scan(
			&item.ID, &sectionType, &item.Label, &item.Amount,
			&item.Description, &item.EasyReadDescription,
			&category, &item.Calculation, &item.IsVoidCover, &item.VoidPercentage,
		); err != nil {
			return Document{}, err
		}
		item.Category = Category(category)
		if section, ok := sections[SectionType(sectionType)]; ok {
			section.Items = append(section.Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return Document{}, err
	}

	for t, section := range sections {
		switch t {
		case SectionCoreRent:
			doc.Sections.CoreRent = *section
		case SectionEligibleCharges:
			doc.Sections.EligibleCharges = *section
		case SectionIneligible:
			doc.Sections.Ineligible = *section
		}
	}
	return doc, nil
}

func (r *repository) PropertyIDs(ctx context.Context) ([]int64, error) {
	const query = `SELECT property_id FROM rent_schedules ORDER BY property_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
