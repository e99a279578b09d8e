package infra

import (
	"fmt"

	"github.com/Bojom/Warehouse/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. When autoMigrate is
// set it also creates / updates all tables via RunMigrations.
func NewDatabase(dsn string, autoMigrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if autoMigrate {
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// CloseDatabase releases the pool behind db.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RunMigrations creates the schema with AutoMigrate and then applies the
// foreign keys and checks AutoMigrate cannot express. Models carry plain FK
// columns without association fields, so every constraint lives in the patches.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Brand{},
		&model.DeviceModel{},
		&model.PartType{},
		&model.Colour{},
		&model.Supplier{},
		&model.Part{},
		&model.StockMovement{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// schemaPatch adds a named constraint when it does not exist yet.
type schemaPatch struct {
	table, name, definition string
}

var schemaPatches = []schemaPatch{
	{"models", "fk_models_brand", "FOREIGN KEY (brand_id) REFERENCES brands(id)"},
	{"parts", "fk_parts_supplier", "FOREIGN KEY (supplier_id) REFERENCES suppliers(id)"},
	{"parts", "fk_parts_brand", "FOREIGN KEY (brand_id) REFERENCES brands(id)"},
	{"parts", "fk_parts_model", "FOREIGN KEY (model_id) REFERENCES models(id)"},
	{"parts", "fk_parts_part_type", "FOREIGN KEY (part_type_id) REFERENCES part_types(id)"},
	{"parts", "fk_parts_colour", "FOREIGN KEY (colour_id) REFERENCES colours(id)"},
	{"stock_movements", "fk_stock_movements_part", "FOREIGN KEY (part_id) REFERENCES parts(id) ON DELETE CASCADE"},
	{"stock_movements", "chk_stock_movements_direction", "CHECK (direction IN ('in', 'out'))"},
	{"stock_movements", "chk_stock_movements_quantity", "CHECK (quantity > 0)"},
	{"parts", "chk_parts_stock_non_negative", "CHECK (stock >= 0)"},
}

// applySchemaPatches runs idempotent DDL statements. Each statement is guarded
// by an existence check so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	for _, p := range schemaPatches {
		sql := fmt.Sprintf(`
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint
                 WHERE conrelid = to_regclass('%s') AND conname = '%s') THEN
    ALTER TABLE %s ADD CONSTRAINT %s %s;
  END IF;
END $$`, p.table, p.name, p.table, p.name, p.definition)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.name, err)
		}
	}
	return nil
}
