package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"docreader/api/handler"
	"docreader/api/router"
	"docreader/job"
	"docreader/logic/extraction"
	"docreader/service"
	"docreader/storage/es"
	"docreader/storage/postgres"
	"docreader/vars"
)

func main() {
	// 1. 初始化 DB
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		vars.PGHOST, vars.PGUSER, vars.PGPWD, vars.PGDB, vars.PGPORT)
	db, err := postgres.InitDB(dsn)
	if err != nil {
		panic(err)
	}
	pgRepo := postgres.NewDocumentRepo(db)

	// 2. 初始化规则库和抽取引擎，规则有问题直接启动失败
	registry, err := extraction.NewRegistry()
	if err != nil {
		panic(fmt.Sprintf("规则库初始化失败: %v", err))
	}
	engine := extraction.NewEngine(registry)

	// 3. 初始化 ES
	esIndexer, err := es.NewESIndexer([]string{vars.ESADDR}, vars.ENTITYINDEX)
	if err != nil {
		panic(err)
	}

	// 启动定时任务
	job.StartCronJob(pgRepo, esIndexer, vars.RETENTIONDAYS)

	// 4. 初始化 Service (业务层)
	extractionSvc := service.NewExtractionService(pgRepo, engine, esIndexer)
	querySvc := service.NewQueryService(pgRepo, esIndexer)

	// 5. 初始化 Handler (API 层)
	docHandler := handler.NewDocumentHandler(extractionSvc, querySvc)

	// 6. 启动 Web Server
	r := gin.Default()
	router.RegisterRoutes(r, docHandler)

	log.Println("Server running on :" + vars.PORT)
	r.Run(":" + vars.PORT)
}
