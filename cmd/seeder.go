package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			tables := []string{
				"audit_records", "user_department_access", "user_module_permissions",
				"documents", "vehicles", "employees", "departments", "users", "companies",
			}
			for _, t := range tables {
				if err := db.Exec("DELETE FROM " + t).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", t, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		rootEmail := "root@system.local"
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ? AND company_id IS NULL", rootEmail).Row().Scan(&exists); err != nil {
			if err := db.Exec(`INSERT INTO users (company_id, email, name, password_hash, user_type, role, is_active, created_at, updated_at)
				VALUES (NULL, ?, 'System Root', ?, 'system_admin', 'admin', true, now(), now())`, rootEmail, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert system admin: %v", err)
			}
			fmt.Println("Seeded system admin:", rootEmail)
		} else {
			fmt.Println("system admin already exists")
		}

		companyName := "Al Farhan Trading Est"
		var companyID int64
		if err := db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row().Scan(&companyID); err != nil {
			trialStart := time.Now().Format("2006-01-02")
			trialEnd := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
			if err := db.Exec(`INSERT INTO companies (name, status, is_trial, trial_start_date, trial_end_date,
				subscription_status, subscription_plan, billing_email, created_at, updated_at)
				VALUES (?, 'active', true, ?, ?, 'trial', 'premium', 'billing@alfarhan.example', now(), now())`,
				companyName, trialStart, trialEnd).Error; err != nil {
				log.Fatalf("failed to insert demo company: %v", err)
			}
			if err := db.Raw("SELECT id FROM companies WHERE name = ?", companyName).Row().Scan(&companyID); err != nil {
				log.Fatalf("failed to lookup demo company id: %v", err)
			}
			fmt.Println("Seeded demo company:", companyName)
		} else {
			fmt.Println("demo company already exists")
		}

		adminEmail := "admin@alfarhan.example"
		if err := db.Raw("SELECT 1 FROM users WHERE company_id = ? AND email = ?", companyID, adminEmail).Row().Scan(&exists); err != nil {
			if err := db.Exec(`INSERT INTO users (company_id, email, name, password_hash, user_type, role, is_active, created_at, updated_at)
				VALUES (?, ?, 'Abdullah Al Farhan', ?, 'company_admin', 'admin', true, now(), now())`,
				companyID, adminEmail, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert company admin: %v", err)
			}
			fmt.Println("Seeded company admin:", adminEmail)
		}

		departments := []string{"Operations", "Transport", "Finance"}
		departmentIDs := map[string]int64{}
		for _, name := range departments {
			var id int64
			if err := db.Raw("SELECT id FROM departments WHERE company_id = ? AND name = ?", companyID, name).Row().Scan(&id); err != nil {
				if err := db.Exec(`INSERT INTO departments (company_id, name, created_at, updated_at)
					VALUES (?, ?, now(), now())`, companyID, name).Error; err != nil {
					log.Fatalf("failed to insert department %s: %v", name, err)
				}
				if err := db.Raw("SELECT id FROM departments WHERE company_id = ? AND name = ?", companyID, name).Row().Scan(&id); err != nil {
					log.Fatalf("failed to lookup department %s: %v", name, err)
				}
				fmt.Printf("Seeded department: %s\n", name)
			}
			departmentIDs[name] = id
		}

		employees := []struct {
			Code       string
			Name       string
			NationalID string
			Department string
			Salary     string
		}{
			{"EMP-001", "Mohammed Hassan", "2411111111", "Operations", "4500.00"},
			{"EMP-002", "Ali Rahman", "2422222222", "Transport", "3800.00"},
			{"EMP-003", "Yusuf Karim", "2433333333", "Transport", "3800.00"},
			{"EMP-004", "Imran Siddiq", "2444444444", "Finance", "6200.00"},
		}
		for _, e := range employees {
			if err := db.Raw("SELECT 1 FROM employees WHERE company_id = ? AND employee_code = ?", companyID, e.Code).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(`INSERT INTO employees (company_id, department_id, employee_code, name, national_id,
				status, basic_salary, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, 'active', ?, now(), now())`,
				companyID, departmentIDs[e.Department], e.Code, e.Name, e.NationalID, e.Salary).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.Code, err)
			}
			fmt.Printf("Seeded employee: %s\n", e.Code)
		}

		documents := []struct {
			EmployeeCode string
			Type         string
			Number       string
			ExpiryDays   int
		}{
			{"EMP-001", "iqama", "IQ-10001", 20},
			{"EMP-002", "iqama", "IQ-10002", 75},
			{"EMP-002", "driving_license", "DL-55012", -10},
			{"EMP-004", "passport", "P-889123", 400},
		}
		for _, d := range documents {
			var employeeID int64
			if err := db.Raw("SELECT id FROM employees WHERE company_id = ? AND employee_code = ?", companyID, d.EmployeeCode).Row().Scan(&employeeID); err != nil {
				log.Fatalf("employee not found for document seed %s: %v", d.EmployeeCode, err)
			}
			if err := db.Raw("SELECT 1 FROM documents WHERE employee_id = ? AND number = ?", employeeID, d.Number).Row().Scan(&exists); err == nil {
				continue
			}
			expiryDate := time.Now().AddDate(0, 0, d.ExpiryDays).Format("2006-01-02")
			issueDate := time.Now().AddDate(-2, 0, 0).Format("2006-01-02")
			if err := db.Exec(`INSERT INTO documents (company_id, employee_id, type, number, issue_date, expiry_date, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, now(), now())`,
				companyID, employeeID, d.Type, d.Number, issueDate, expiryDate).Error; err != nil {
				log.Fatalf("failed to insert document %s: %v", d.Number, err)
			}
			fmt.Printf("Seeded document: %s (%s)\n", d.Number, d.Type)
		}

		vehicles := []struct {
			Plate            string
			Make             string
			Model            string
			Year             int
			RegistrationDays int
			InsuranceDays    int
		}{
			{"ر س ب 1234", "Toyota", "Hilux", 2021, 30, 120},
			{"ح م د 5678", "Isuzu", "NPR", 2019, -5, 45},
		}
		for _, v := range vehicles {
			if err := db.Raw("SELECT 1 FROM vehicles WHERE company_id = ? AND plate_number = ?", companyID, v.Plate).Row().Scan(&exists); err == nil {
				continue
			}
			registration := time.Now().AddDate(0, 0, v.RegistrationDays).Format("2006-01-02")
			insurance := time.Now().AddDate(0, 0, v.InsuranceDays).Format("2006-01-02")
			if err := db.Exec(`INSERT INTO vehicles (company_id, plate_number, make, model, year, status,
				registration_expiry, insurance_expiry, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, 'available', ?, ?, now(), now())`,
				companyID, v.Plate, v.Make, v.Model, v.Year, registration, insurance).Error; err != nil {
				log.Fatalf("failed to insert vehicle %s: %v", v.Plate, err)
			}
			fmt.Printf("Seeded vehicle: %s\n", v.Plate)
		}

		hrEmail := "hr@alfarhan.example"
		var hrUserID int64
		if err := db.Raw("SELECT id FROM users WHERE company_id = ? AND email = ?", companyID, hrEmail).Row().Scan(&hrUserID); err != nil {
			if err := db.Exec(`INSERT INTO users (company_id, email, name, password_hash, user_type, role, is_active, created_at, updated_at)
				VALUES (?, ?, 'Sara Al Otaibi', ?, 'employee', 'hr', true, now(), now())`,
				companyID, hrEmail, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert hr user: %v", err)
			}
			if err := db.Raw("SELECT id FROM users WHERE company_id = ? AND email = ?", companyID, hrEmail).Row().Scan(&hrUserID); err != nil {
				log.Fatalf("failed to lookup hr user id: %v", err)
			}
			fmt.Println("Seeded hr user:", hrEmail)
		}

		// view=1 create=2 edit=4 delete=8 manage=16
		grants := []struct {
			Module string
			Mask   int
		}{
			{"employees", 7},
			{"documents", 7},
			{"departments", 1},
			{"reports", 1},
		}
		for _, g := range grants {
			if err := db.Raw("SELECT 1 FROM user_module_permissions WHERE user_id = ? AND module = ?", hrUserID, g.Module).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(`INSERT INTO user_module_permissions (user_id, module, permissions, granted_by, created_at, updated_at)
				VALUES (?, ?, ?, NULL, now(), now())`, hrUserID, g.Module, g.Mask).Error; err != nil {
				log.Fatalf("failed to grant module %s to hr user: %v", g.Module, err)
			}
		}
		fmt.Println("Granted hr module permissions:", hrEmail)

		for _, name := range []string{"Operations", "Transport"} {
			if err := db.Raw("SELECT 1 FROM user_department_access WHERE user_id = ? AND department_id = ?", hrUserID, departmentIDs[name]).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(`INSERT INTO user_department_access (user_id, department_id, granted_by, created_at)
				VALUES (?, ?, NULL, now())`, hrUserID, departmentIDs[name]).Error; err != nil {
				log.Fatalf("failed to grant department %s to hr user: %v", name, err)
			}
		}
		fmt.Println("Granted hr department access:", hrEmail)

		fmt.Println("Seeding complete")
	},
}
