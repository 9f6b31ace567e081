package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/realmkit/realmfeed/events"
	"github.com/realmkit/realmfeed/feed"
	"github.com/realmkit/realmfeed/registry"
	"github.com/realmkit/realmfeed/server"
	"github.com/realmkit/realmfeed/server/middlewares"
	. "github.com/realmkit/realmfeed/utils"
	"github.com/realmkit/realmfeed/utils/dotenv"
	. "github.com/realmkit/realmfeed/utils/flag"
	. "github.com/realmkit/realmfeed/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

var bypassAuth = flag.Bool("no_auth", false, "skip token auth, for local development only")

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to feed database: ", err)
	}
	DatabaseSetupAndMigration(db)

	bus := events.NewFeedEventBus()
	go events.NewReporter(NewDogStatsdClient(), bus).ProcessDeltas(context.Background())

	registryClient := registry.NewClient(os.Getenv("REGISTRY_URL"))
	service := &feed.Service{
		DB:        db,
		Posts:     registry.NewPostStore(db),
		Proposals: registryClient,
		Members:   registryClient,
		Events:    bus,
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))
	if !*bypassAuth {
		middlewares.Setup()
		router.Use(middlewares.Auth())
	}

	server.NewFeedServer(service).RegisterRoutes(router)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	Log.Info("api server starts up")
	router.Run(":8080")
}
