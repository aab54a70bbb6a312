package main

import (
	"log"

	bookhandler "github.com/YOHANNES7766/AmenApp/book/handler"
	bookrepo "github.com/YOHANNES7766/AmenApp/book/repo"
	bookrouter "github.com/YOHANNES7766/AmenApp/book/router"
	bookservice "github.com/YOHANNES7766/AmenApp/book/service"
	chathandler "github.com/YOHANNES7766/AmenApp/chat/handler"
	chatrepo "github.com/YOHANNES7766/AmenApp/chat/repo"
	chatrouter "github.com/YOHANNES7766/AmenApp/chat/router"
	chatservice "github.com/YOHANNES7766/AmenApp/chat/service"
	"github.com/YOHANNES7766/AmenApp/common"
	"github.com/YOHANNES7766/AmenApp/config"
	"github.com/YOHANNES7766/AmenApp/realtime"
	"github.com/YOHANNES7766/AmenApp/store"
	userhandler "github.com/YOHANNES7766/AmenApp/user/handler"
	userrepo "github.com/YOHANNES7766/AmenApp/user/repo"
	userrouter "github.com/YOHANNES7766/AmenApp/user/router"
	userservice "github.com/YOHANNES7766/AmenApp/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	db, err := store.InitDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("fail to initialize database: %v", err)
	}
	defer store.CloseDB()

	rdb, err := store.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("fail to initialize redis: %v", err)
	}
	defer store.CloseRedis()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	r := gin.Default()
	r.Use(cors.New(cfg.Cors()))

	hub := realtime.NewHub()
	defer hub.Close()

	users := userrepo.NewUserRepo(db)
	conversations := chatrepo.NewConversationRepo(db)
	messages := chatrepo.NewMessageRepo(db)
	conversationCache := chatrepo.NewConversationCache(rdb)
	books := bookrepo.NewBookRepo(db)

	chatSvc := chatservice.NewChatService(conversations, messages, conversationCache, users, hub, logger)
	userSvc := userservice.NewUserService(users)
	bookSvc := bookservice.NewBookService(books)

	wsHandler := realtime.NewHandler(hub, chatSvc, logger)

	authed := r.Group("/api", common.Auth(cfg.JWTSecret))
	chatrouter.SetChatRouter(authed, chathandler.NewChatHandler(chatSvc), wsHandler)
	userrouter.SetUserRouter(authed, userhandler.NewUserHandler(userSvc))
	bookrouter.SetBookRouter(authed, bookhandler.NewBookHandler(bookSvc))

	log.Printf("AmenApp server started at http://localhost:%d", cfg.Port)
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
