package http

import (
	"net/http"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/R3MiX9002/my-gemini-app/internal/ai"
	appsvc "github.com/R3MiX9002/my-gemini-app/internal/app"
	"github.com/R3MiX9002/my-gemini-app/internal/bootstrap"
	"github.com/R3MiX9002/my-gemini-app/internal/cache"
	"github.com/R3MiX9002/my-gemini-app/internal/repository"
	"github.com/R3MiX9002/my-gemini-app/internal/search"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/handler"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/middleware"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	cfg := app.Config
	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Logger), gin.Recovery())
	router.MaxMultipartMemory = int64(cfg.Upload.MaxMemoryMB) << 20

	userID := app.DefaultUser.ID

	llmClient := ai.NewClient(ai.NewHTTPClient(cfg.LLMTimeout()))
	chatService := appsvc.NewChatService(llmClient, ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}, cfg.LLM.StreamBuffer)

	searchService := appsvc.NewSearchService(
		cache.New(app.Redis, cfg.SearchCacheTTL()),
		search.NewYahoo(cfg.Search.Yahoo, cfg.SearchTimeout()),
		search.NewBing(cfg.Search.Bing, cfg.SearchTimeout()),
	)

	var publisher appsvc.UploadEventPublisher
	if app.Publisher != nil {
		publisher = app.Publisher
	}
	uploadService := appsvc.NewUploadService(repository.NewUploadedFileRepository(app.DB), cfg.Upload.Dir, publisher)

	contextService := appsvc.NewContextService(
		repository.NewUserRepository(app.DB),
		repository.NewSessionRepository(app.DB),
		repository.NewContextPointRepository(app.DB),
		repository.NewProjectElementRepository(app.DB),
		repository.NewRelationshipRepository(app.DB),
		repository.NewUserSettingRepository(app.DB),
	)

	healthHandler := handler.NewHealthHandler(app)
	generateHandler := handler.NewGenerateHandler(chatService)
	searchHandler := handler.NewSearchHandler(searchService)
	uploadHandler := handler.NewUploadHandler(uploadService, userID)
	contextHandler := handler.NewContextHandler(contextService, userID)
	driveHandler := handler.NewDriveHandler(appsvc.NewDriveService())

	router.StaticFile("/", filepath.Join(cfg.App.WebDir, "index.html"))
	router.GET("/healthz", healthHandler.Check)

	searchGroup := router.Group("/search")
	searchGroup.GET("/yahoo", searchHandler.Yahoo)
	searchGroup.GET("/bing", searchHandler.Bing)
	searchGroup.GET("/latest", searchHandler.LatestAIFeatures)

	api := router.Group("/api")
	api.POST("/generate", generateHandler.Generate)
	api.POST("/save-to-drive", driveHandler.Save)
	api.POST("/upload", uploadHandler.Upload)
	api.GET("/files", uploadHandler.ListFiles)
	api.GET("/files/:hash", uploadHandler.FileByHash)

	api.GET("/user", contextHandler.GetUser)

	api.POST("/sessions", contextHandler.StartSession)
	api.GET("/sessions", contextHandler.ListSessions)
	api.GET("/sessions/:id", contextHandler.GetSession)
	api.POST("/sessions/:id/end", contextHandler.EndSession)
	api.POST("/sessions/:id/context", contextHandler.AddContextPoint)
	api.GET("/sessions/:id/context", contextHandler.ListContextPoints)

	api.POST("/elements", contextHandler.AddElement)
	api.GET("/elements", contextHandler.ListElements)
	api.GET("/elements/:id", contextHandler.GetElement)
	api.GET("/elements/:id/relationships", contextHandler.ListRelationships)
	api.POST("/relationships", contextHandler.AddRelationship)

	api.GET("/settings", contextHandler.ListSettings)
	api.GET("/settings/:key", contextHandler.GetSetting)
	api.PUT("/settings/:key", contextHandler.PutSetting)

	router.NoRoute(staticFallback(cfg.App.WebDir))
	return router
}

// staticFallback serves any other GET path from webDir. Directories and
// missing files are 404.
func staticFallback(webDir string) gin.HandlerFunc {
	root := http.Dir(webDir)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.Error(c, http.StatusNotFound, "not found")
			return
		}

		name := path.Clean("/" + c.Request.URL.Path)
		f, err := root.Open(name)
		if err != nil {
			response.Error(c, http.StatusNotFound, "not found")
			return
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil || info.IsDir() {
			response.Error(c, http.StatusNotFound, "not found")
			return
		}

		c.File(filepath.Join(webDir, filepath.FromSlash(name)))
	}
}
