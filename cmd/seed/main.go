package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/medbook/medbook-api/pkg/config"
	"github.com/medbook/medbook-api/pkg/database"
)

var specialities = []string{
	"Cardiology",
	"Dermatology",
	"Endocrinology",
	"General Practice",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
}

var weekdayPatterns = [][]string{
	{"Mon", "Wed", "Fri"},
	{"Tue", "Thu"},
	{"Mon", "Tue", "Wed", "Thu", "Fri"},
	{"Sat", "Sun"},
}

var shifts = [][2]string{
	{"09:00", "12:00"},
	{"10:00", "13:00"},
	{"14:00", "17:00"},
	{"18:00", "21:00"},
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	gofakeit.Seed(time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	hospitalIDs, err := seedHospitals(ctx, db, 5)
	if err != nil {
		log.Fatalf("seed hospitals: %v", err)
	}
	if err := seedDoctors(ctx, db, hospitalIDs, 40); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(ctx, db, 200); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

func seedHospitals(ctx context.Context, db *sqlx.DB, count int) ([]string, error) {
	log.Printf("seeding %d hospitals", count)

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.NewString()
		_, err := db.ExecContext(ctx, `
			INSERT INTO hospitals (id, name, address, phone, email)
			VALUES ($1, $2, $3, $4, $5)
		`, id, gofakeit.Company()+" Hospital", gofakeit.Address().Address, gofakeit.Phone(), gofakeit.Email())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedDoctors(ctx context.Context, db *sqlx.DB, hospitalIDs []string, count int) error {
	log.Printf("seeding %d doctors", count)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	for i := 0; i < count; i++ {
		id := uuid.NewString()
		hospitalID := hospitalIDs[gofakeit.Number(0, len(hospitalIDs)-1)]

		// Most doctors arrive pre-approved so the public listing has content;
		// the rest stay pending for the approval workflow.
		state := "approved"
		if gofakeit.Number(1, 10) > 8 {
			state = "pending"
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO doctors (id, full_name, speciality, email, phone, hospital_id, approval_state, approved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, CASE WHEN $7 = 'approved' THEN now() END)
		`, id, "Dr. "+gofakeit.Name(), specialities[gofakeit.Number(0, len(specialities)-1)],
			gofakeit.Email(), gofakeit.Phone(), hospitalID, state)
		if err != nil {
			return err
		}

		days := weekdayPatterns[gofakeit.Number(0, len(weekdayPatterns)-1)]
		shift := shifts[gofakeit.Number(0, len(shifts)-1)]
		for _, day := range days {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO doctor_availability (id, doctor_id, weekday, start_time, end_time)
				VALUES ($1, $2, $3, $4, $5)
			`, uuid.NewString(), id, day, shift[0], shift[1])
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func seedPatients(ctx context.Context, db *sqlx.DB, count int) error {
	log.Printf("seeding %d patients", count)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	for i := 0; i < count; i++ {
		dob := gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		)
		email := fmt.Sprintf("patient%d.%s", i, gofakeit.Email())

		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, password_hash, full_name, phone, role, gender, date_of_birth, height_cm, weight_kg)
			VALUES ($1, $2, $3, $4, $5, 'PATIENT', $6, $7, $8, $9)
		`, uuid.NewString(), email, string(hash), gofakeit.Name(), gofakeit.Phone(),
			gofakeit.Gender(), dob.Format("2006-01-02"), gofakeit.Number(150, 200), gofakeit.Number(45, 110))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
