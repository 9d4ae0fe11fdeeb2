package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shiftwise/roster-backend-go/internal/config"
	"github.com/shiftwise/roster-backend-go/internal/domain/role"
	"github.com/shiftwise/roster-backend-go/internal/domain/shift"
	appHTTP "github.com/shiftwise/roster-backend-go/internal/handler/http"
	"github.com/shiftwise/roster-backend-go/internal/pkg/database"
	"github.com/shiftwise/roster-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/roster-backend-go/internal/pkg/lock"
	"github.com/shiftwise/roster-backend-go/internal/pkg/timecodec"
	"github.com/shiftwise/roster-backend-go/internal/repository/embedded"
	"github.com/shiftwise/roster-backend-go/internal/repository/postgresql"
	roleService "github.com/shiftwise/roster-backend-go/internal/service/role"
	rolloutService "github.com/shiftwise/roster-backend-go/internal/service/rollout"
	shiftService "github.com/shiftwise/roster-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var shiftRepo shift.Repository
	var roleRepo role.Repository

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			fmt.Println("Error connecting to database:", err)
			return
		}
		shiftRepo = postgresql.NewShiftRepository(db)
		roleRepo = postgresql.NewRoleRepository(db)
	case config.StoreDriverEmbedded:
		db, err := database.NewEmbeddedDB(cfg.Store.EmbeddedPath)
		if err != nil {
			fmt.Println("Error opening embedded store:", err)
			return
		}
		shiftRepo = embedded.NewShiftRepository(db)
		roleRepo = embedded.NewRoleRepository(db)
	}

	// The redis locker is only worth it with multiple nodes; a single node
	// gets the same guarantee in process.
	var windowLocker lock.WindowLocker
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		windowLocker = lock.NewRedisLocker(client)
	} else {
		windowLocker = lock.NewInProcessLocker()
	}

	fallbackZone, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		log.Fatal("Invalid APP_TIME_ZONE: ", cfg.App.TimeZone)
	}
	codec := timecodec.New(fallbackZone)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	shiftSvc := shiftService.NewShiftService(shiftRepo, codec)
	roleSvc := roleService.NewRoleService(roleRepo, codec)
	rolloutSvc := rolloutService.NewRolloutService(shiftRepo, roleRepo, windowLocker)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	roleHandler := appHTTP.NewRoleHandler(roleSvc)
	rolloutHandler := appHTTP.NewRolloutHandler(rolloutSvc)
	periodHandler := appHTTP.NewPeriodHandler(cfg.App.WeekStartDay)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		shiftHandler,
		roleHandler,
		rolloutHandler,
		periodHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
