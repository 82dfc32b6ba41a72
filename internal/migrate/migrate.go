package migrate

import (
	"context"

	"github.com/HenryBuilds/commercio/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, uuid-ossp
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных")

	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			log.Error("Не удалось включить расширение uuid-ossp", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Warehouse{},
		&models.StockEntry{},
		&models.Reservation{},
		&models.InventoryTransaction{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated
BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_stock_entries_updated ON stock_entries;
CREATE TRIGGER trg_stock_entries_updated
BEFORE UPDATE ON stock_entries
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггеры updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Физический остаток не бывает отрицательным
		if err := db.Exec(`
ALTER TABLE stock_entries
  DROP CONSTRAINT IF EXISTS chk_stock_entries_quantity_non_negative;
ALTER TABLE stock_entries
  ADD CONSTRAINT chk_stock_entries_quantity_non_negative
  CHECK (quantity >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для stock_entries.quantity", zap.Error(err))
			return err
		}

		// Резерв всегда на положительное количество
		if err := db.Exec(`
ALTER TABLE reservations
  DROP CONSTRAINT IF EXISTS chk_reservations_quantity_gt_zero;
ALTER TABLE reservations
  ADD CONSTRAINT chk_reservations_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для reservations.quantity", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE reservations
  DROP CONSTRAINT IF EXISTS chk_reservations_status_allowed;
ALTER TABLE reservations
  ADD CONSTRAINT chk_reservations_status_allowed
  CHECK (status IN ('ACTIVE','CONSUMED','RELEASED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для reservations.status", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE inventory_transactions
  DROP CONSTRAINT IF EXISTS chk_transactions_quantity_gt_zero;
ALTER TABLE inventory_transactions
  ADD CONSTRAINT chk_transactions_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для inventory_transactions.quantity", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE inventory_transactions
  DROP CONSTRAINT IF EXISTS chk_transactions_type_allowed;
ALTER TABLE inventory_transactions
  ADD CONSTRAINT chk_transactions_type_allowed
  CHECK (type IN ('RECEIPT','SHIPMENT','RETURN','ADJUSTMENT'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для inventory_transactions.type", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('CREATED','CONFIRMED','PAID','SHIPPED','COMPLETED','CANCELLED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказов", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_non_negative
  CHECK (total_cents >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для orders.total_cents", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для order_items.quantity", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_prices_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_prices_non_negative
  CHECK (unit_price_cents >= 0 AND line_total_cents >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для цен в order_items", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")

		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_order_items_order_product
ON order_items (order_id, product_id);
`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс ux_order_items_order_product", zap.Error(err))
			return err
		}

		// Частичный индекс под запрос суммы активных резервов
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_reservations_active_pair
ON reservations (product_id, warehouse_id)
WHERE status = 'ACTIVE';
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_reservations_active_pair", zap.Error(err))
			return err
		}

		// Частичный индекс под выборку истёкших резервов
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_reservations_expired
ON reservations (expires_at)
WHERE status = 'ACTIVE' AND expires_at IS NOT NULL;
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_reservations_expired", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_customer_created
ON orders (customer_id, created_at DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_customer_created", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK order_items.order_id -> orders.id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE stock_entries
  DROP CONSTRAINT IF EXISTS fk_stock_entries_product,
  ADD CONSTRAINT fk_stock_entries_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
ALTER TABLE stock_entries
  DROP CONSTRAINT IF EXISTS fk_stock_entries_warehouse,
  ADD CONSTRAINT fk_stock_entries_warehouse
    FOREIGN KEY (warehouse_id) REFERENCES warehouses(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("Не удалось создать FK для stock_entries", zap.Error(err))
			return err
		}
	}

	log.Info("Миграция базы данных успешно завершена")
	return nil
}
