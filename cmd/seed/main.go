package main

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portal-backend/internal/config"
	"portal-backend/internal/db"
	"portal-backend/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	departments := seedDepartments(database)
	seedUsers(database, departments)
	seedLeaveTypes(database)

	log.Println("seeding complete")
}

func seedDepartments(database *gorm.DB) map[string]models.Department {
	entries := []models.Department{
		{Name: "Engineering", Description: "Product development and engineering team"},
		{Name: "Human Resources", Description: "HR and employee management"},
		{Name: "Sales", Description: "Sales and business development"},
		{Name: "Marketing", Description: "Marketing and communications"},
		{Name: "Finance", Description: "Finance and accounting"},
	}

	byName := make(map[string]models.Department, len(entries))
	for _, entry := range entries {
		var dept models.Department
		err := database.Where("name = ?", entry.Name).
			Attrs(models.Department{Description: entry.Description}).
			FirstOrCreate(&dept, models.Department{Name: entry.Name}).Error
		if err != nil {
			log.Fatalf("seed department %s: %v", entry.Name, err)
		}
		byName[entry.Name] = dept
	}
	log.Printf("seeded %d departments", len(byName))
	return byName
}

func seedUsers(database *gorm.DB, departments map[string]models.Department) {
	hr := departments["Human Resources"]
	eng := departments["Engineering"]

	users := []models.User{
		{
			EmployeeCode: "EMP001",
			Email:        "admin@company.com",
			FirstName:    "Admin",
			LastName:     "User",
			Role:         models.RoleAdmin,
			Designation:  "System Administrator",
			DepartmentID: &hr.ID,
			Active:       true,
			JoinedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{
			EmployeeCode: "EMP002",
			Email:        "hr@company.com",
			FirstName:    "Harriet",
			LastName:     "Reyes",
			Role:         models.RoleHR,
			Designation:  "HR Manager",
			DepartmentID: &hr.ID,
			Active:       true,
			JoinedAt:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
		},
		{
			EmployeeCode: "EMP003",
			Email:        "dev@company.com",
			FirstName:    "Devon",
			LastName:     "Park",
			Role:         models.RoleEmployee,
			Designation:  "Software Engineer",
			DepartmentID: &eng.ID,
			Active:       true,
			JoinedAt:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		},
	}

	for _, user := range users {
		err := database.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
		if err != nil {
			log.Fatalf("seed user %s: %v", user.Email, err)
		}
	}
	log.Printf("seeded %d users", len(users))
}

func seedLeaveTypes(database *gorm.DB) {
	types := []models.LeaveType{
		{Name: "Casual Leave", Code: "CL", Description: "For personal matters and short-term absences", DefaultAnnualQuota: 12, Paid: true, Active: true},
		{Name: "Privilege Leave", Code: "PL", Description: "Earned leave for vacation and extended absence", DefaultAnnualQuota: 18, Paid: true, Active: true},
		{Name: "Sick Leave", Code: "SL", Description: "For medical reasons and health issues", DefaultAnnualQuota: 10, Paid: true, Active: true},
	}

	for _, entry := range types {
		var leaveType models.LeaveType
		err := database.Where("code = ?", entry.Code).
			Attrs(entry).
			FirstOrCreate(&leaveType, models.LeaveType{Code: entry.Code}).Error
		if err != nil {
			log.Fatalf("seed leave type %s: %v", entry.Code, err)
		}
	}
	log.Printf("seeded %d leave types", len(types))
}
