package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/config"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.Barber{},
		&models.Service{},
		&models.WorkingHourWindow{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Vocabulário legado de status normalizado uma única vez, no banco.
	db.Exec(`
        UPDATE appointments SET status = 'pending'   WHERE status = 'scheduled';
        UPDATE appointments SET status = 'completed' WHERE status = 'done';
        UPDATE appointments SET status = 'canceled'  WHERE status = 'cancelled';
    `)

	// Defesa autoritativa contra double-booking: no máximo um agendamento
	// não cancelado pode ocupar qualquer intervalo sobreposto do barbeiro.
	// O re-check otimista do writer é só UX; quem decide é esta constraint.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    barber_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                )
                WHERE (status <> 'canceled');
            END IF;
        END
        $$
    `)

	return db
}
