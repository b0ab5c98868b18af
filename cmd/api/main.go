package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendify/attendify-backend-go/internal/config"
	appHTTP "github.com/attendify/attendify-backend-go/internal/handler/http"
	"github.com/attendify/attendify-backend-go/internal/pkg/database"
	"github.com/attendify/attendify-backend-go/internal/pkg/jwt"
	"github.com/attendify/attendify-backend-go/internal/pkg/storage"
	"github.com/attendify/attendify-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendify/attendify-backend-go/internal/service/attendance"
	"github.com/attendify/attendify-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	userStatusRepo := postgresql.NewUserStatusRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userStatusRepo,
		fileService,
		cfg.Office,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.ClockWindow)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
