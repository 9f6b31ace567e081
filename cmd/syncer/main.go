package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/realmkit/realmfeed/events"
	"github.com/realmkit/realmfeed/feed"
	"github.com/realmkit/realmfeed/model"
	"github.com/realmkit/realmfeed/registry"
	. "github.com/realmkit/realmfeed/utils"
	"github.com/realmkit/realmfeed/utils/dotenv"
	. "github.com/realmkit/realmfeed/utils/log"
	"github.com/robfig/cron/v3"
)

const (
	defaultSyncSchedule = "@every 5m"

	// A realm synced more recently than this is skipped, so several syncer
	// replicas don't hammer the registry for the same realm.
	syncCadence = 4 * time.Minute
)

func main() {
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

	syncStore, err := GetRedisSyncStore()
	if err != nil {
		Log.Fatal("fail to connect to sync status store: ", err)
	}

	realms := strings.Split(os.Getenv("SYNC_REALMS"), ",")
	schedule := os.Getenv("SYNC_SCHEDULE")
	if schedule == "" {
		schedule = defaultSyncSchedule
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, func() {
		syncAllRealms(service, syncStore, realms)
	}); err != nil {
		Log.Fatal("invalid sync schedule ", schedule, ": ", err)
	}

	Log.Info("proposal syncer starts up, schedule: ", schedule)
	scheduler.Run()
}

func syncAllRealms(service *feed.Service, syncStore *RedisSyncStore, realms []string) {
	for _, realmID := range realms {
		realmID = strings.TrimSpace(realmID)
		if realmID == "" {
			continue
		}

		lastSynced, err := syncStore.GetLastSyncedAt(realmID, model.EnvironmentMainnet)
		if err != nil {
			Log.Errorln("cannot read sync status for realm ", realmID, ": ", err)
			continue
		}
		if time.Since(lastSynced) < syncCadence {
			continue
		}

		changed, err := service.SyncProposals(context.Background(), realmID, model.EnvironmentMainnet)
		if err != nil {
			Log.Errorln("sync failed for realm ", realmID, ": ", err)
			continue
		}
		Log.Info("synced realm ", realmID, ", changed rows: ", changed)

		if err := syncStore.SetLastSyncedAt(realmID, model.EnvironmentMainnet, time.Now()); err != nil {
			Log.Errorln("cannot record sync status for realm ", realmID, ": ", err)
		}
	}
}
