package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/linesmerrill/legal-connect-api/api"
	"github.com/linesmerrill/legal-connect-api/api/scheduler"
	"github.com/linesmerrill/legal-connect-api/config"
	"github.com/linesmerrill/legal-connect-api/databases"
	"github.com/linesmerrill/legal-connect-api/messaging"
	"github.com/linesmerrill/legal-connect-api/notify"
)

const defaultRequestTimeout = 30 * time.Second

// App stores the router and db connection, so it can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Service *messaging.Service
	Metrics *api.MetricsCollector
	// SendLimiter throttles POST /messages per user, nil when disabled
	SendLimiter *api.RateLimiter

	dbHelper    databases.DatabaseHelper
	client      databases.ClientHelper
	redisClient *redis.Client
	redisFeed   *messaging.RedisFeed
	scheduler   *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	udb := databases.NewUserDatabase(a.dbHelper)

	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: udb, Tokens: api.NewTokenIssuer(a.Config.JWTSecret, a.Config.TokenTTL)}
	m.SetupGoGuardian()

	if a.Metrics == nil {
		a.Metrics = api.NewMetricsCollector(1000)
	}

	if a.SendLimiter == nil && a.Config.SendRatePerMinute > 0 {
		a.SendLimiter = api.NewRateLimiter(a.Config.SendRatePerMinute, a.Config.SendRateBurst)
	}

	timeout := a.Config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	withTimeout := api.TimeoutMiddleware(timeout)
	rest := func(h http.HandlerFunc) http.Handler {
		return withTimeout(m.Middleware(h))
	}

	chat := Chat{Service: a.Service}
	u := User{DB: udb}
	mh := MetricsHandler{Collector: a.Metrics}

	// healthchex
	r := api.New()
	r.Use(api.MetricsMiddleware(a.Metrics, "/health", "/api/v1/metrics"))

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", rest(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", rest(m.RevokeToken)).Methods("DELETE")
	apiCreate.Handle("/auth/session", rest(m.SessionHandler)).Methods("GET")

	apiCreate.Handle("/chatrooms", rest(chat.ChatroomsHandler)).Methods("GET")
	apiCreate.Handle("/chatrooms/with/{receiver_id}", rest(chat.ChatroomWithHandler)).Methods("GET")
	apiCreate.Handle("/chatrooms/{chatroom_id}/messages", rest(chat.MessagesHandler)).Methods("GET")
	apiCreate.Handle("/chatrooms/{chatroom_id}/messages/{message_id}", rest(chat.EditMessageHandler)).Methods("PUT")
	apiCreate.Handle("/chatrooms/{chatroom_id}/messages/{message_id}", rest(chat.DeleteMessageHandler)).Methods("DELETE")
	send := http.Handler(http.HandlerFunc(chat.SendMessageHandler))
	if a.SendLimiter != nil {
		send = a.SendLimiter.Middleware(send)
	}
	apiCreate.Handle("/messages", withTimeout(m.Middleware(send))).Methods("POST")
	// no request timeout, the stream lives as long as the connection
	apiCreate.Handle("/chat/ws/{receiver_id}", api.QueryTokenMiddleware(m.Middleware(http.HandlerFunc(chat.ChatWebSocketHandler)))).Methods("GET")

	apiCreate.Handle("/user/{user_id}", rest(u.UserHandler)).Methods("GET")

	if a.Config.CloudinaryURL != "" {
		cloudinaryHandler, err := NewCloudinaryHandler(a.Config.CloudinaryURL, a.Config.CloudinaryUploadPreset)
		if err != nil {
			zap.S().Errorw("failed to configure cloudinary, upload signatures disabled", "error", err)
		} else {
			apiCreate.Handle("/generate-signature", rest(cloudinaryHandler.GenerateSignature)).Methods("POST")
		}
	}

	apiCreate.Handle("/metrics", rest(mh.GetMetrics)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}
	a.client = client

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("legal-connect-api has connected to the database")

	cdb := databases.NewChatroomDatabase(a.dbHelper)
	mdb := databases.NewMessageDatabase(a.dbHelper)

	var feed messaging.Feed
	if a.Config.RedisURL != "" {
		if feed, err = a.connectRedisFeed(); err != nil {
			zap.S().With(err).Error("failed to connect to redis")
			return err
		}
	} else {
		zap.S().Warn("REDIS_URL not set, live updates only reach clients of this instance")
	}

	a.Service = messaging.NewService(cdb, mdb, feed)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := a.Service.EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create chat indexes")
		return err
	}

	if a.Config.SendGridAPIKey != "" {
		a.Service.Notifier = notify.NewMailer(databases.NewUserDatabase(a.dbHelper),
			a.Config.SendGridAPIKey, a.Config.NotifyFromEmail, a.Config.NotifyFromName, a.Config.BaseURL)
	} else {
		zap.S().Warn("SENDGRID_API_KEY not set, first contact emails disabled")
	}

	a.scheduler = scheduler.NewScheduler(cdb, a.Config.BackfillSchedule)
	if err := a.scheduler.Start(); err != nil {
		return err
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) connectRedisFeed() (*messaging.RedisFeed, error) {
	opts, err := redis.ParseURL(a.Config.RedisURL)
	if err != nil {
		return nil, err
	}
	a.redisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	feed, err := messaging.NewRedisFeed(ctx, a.redisClient, a.Config.RedisChannel)
	if err != nil {
		a.redisClient.Close()
		return nil, err
	}
	a.redisFeed = feed
	zap.S().Infow("live updates relayed through redis", "channel", a.Config.RedisChannel)
	return feed, nil
}

// Shutdown stops background work and releases the connections opened by Initialize
func (a *App) Shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.Metrics != nil {
		a.Metrics.Stop()
	}
	if a.SendLimiter != nil {
		a.SendLimiter.Stop()
	}
	if a.redisFeed != nil {
		if err := a.redisFeed.Close(); err != nil {
			zap.S().Warnw("failed to close redis feed", "error", err)
		}
	}
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
