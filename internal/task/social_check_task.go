package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"baseti_shopapp_v1_202609/internal/model"
	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/internal/service"
)

// SocialCheckTask 社媒连接巡检任务
// 定期探活所有社媒账号主页，失联的标记 failed
type SocialCheckTask struct {
	connRepo      repository.SocialConnectionRepository
	socialService *service.SocialService
	Cron          *cron.Cron

	// 控制并发探测数量，防止对外请求过猛
	concurrencyLimit int
	staleAfter       time.Duration
	batchSize        int
}

func NewSocialCheckTask(connRepo repository.SocialConnectionRepository, socialService *service.SocialService) *SocialCheckTask {
	return &SocialCheckTask{
		connRepo:         connRepo,
		socialService:    socialService,
		Cron:             cron.New(cron.WithSeconds()),
		concurrencyLimit: 10,
		staleAfter:       6 * time.Hour,
		batchSize:        100,
	}
}

// Start 启动巡检
func (t *SocialCheckTask) Start() {
	// 策略：每 30 分钟巡检一次，只检查 6 小时内没检查过的连接
	_, err := t.Cron.AddFunc("0 0/30 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 SocialCheckTask: %v", err)
	}

	t.Cron.Start()
	log.Println("SocialCheckTask 巡检任务已启动 (每30分钟检查一次)")
}

// Stop 停止巡检
func (t *SocialCheckTask) Stop() {
	t.Cron.Stop()
}

// Execute 执行一次完整巡检
func (t *SocialCheckTask) Execute(ctx context.Context) {
	log.Println("[SocialCheck] Start checking connections...")

	connections, err := t.connRepo.ListDueForCheck(ctx, time.Now().Add(-t.staleAfter), t.batchSize)
	if err != nil {
		log.Printf("[SocialCheck] Failed to fetch connection list: %v\n", err)
		return
	}
	if len(connections) == 0 {
		log.Println("[SocialCheck] Nothing due for check")
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, t.concurrencyLimit)

	for _, conn := range connections {
		select {
		case <-ctx.Done():
			log.Println("[SocialCheck] Task context timeout, stopping...")
			return
		default:
		}
		wg.Add(1)
		sem <- struct{}{}

		go func(c model.SocialConnection) {
			defer wg.Done()
			defer func() { <-sem }()

			t.socialService.CheckConnection(ctx, &c)
		}(conn)
	}

	wg.Wait()
	log.Println("[SocialCheck] Check finished.")
}
