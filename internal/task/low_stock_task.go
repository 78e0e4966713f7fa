package task

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"baseti_shopapp_v1_202609/internal/repository"
	"baseti_shopapp_v1_202609/pkg/logger"
	"baseti_shopapp_v1_202609/pkg/notify"
)

// LowStockTask 低库存巡检任务
// 每天扫一遍所有商家的在售商品，库存低于阈值的发告警通知
type LowStockTask struct {
	businessRepo repository.BusinessRepository
	productRepo  repository.ProductRepository
	notifier     notify.Notifier
	Cron         *cron.Cron

	pageSize int
}

func NewLowStockTask(
	businessRepo repository.BusinessRepository,
	productRepo repository.ProductRepository,
	notifier notify.Notifier,
) *LowStockTask {
	return &LowStockTask{
		businessRepo: businessRepo,
		productRepo:  productRepo,
		notifier:     notifier,
		Cron:         cron.New(cron.WithSeconds()),
		pageSize:     200,
	}
}

// Start 启动巡检
func (t *LowStockTask) Start() {
	// 每天早上 8 点整扫一次
	_, err := t.Cron.AddFunc("0 0 8 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动 LowStockTask: %v", err)
	}

	t.Cron.Start()
	log.Println("LowStockTask 巡检任务已启动 (每天 08:00 扫描)")
}

// Stop 停止巡检
func (t *LowStockTask) Stop() {
	t.Cron.Stop()
}

// Execute 执行一次完整扫描
func (t *LowStockTask) Execute(ctx context.Context) {
	log.Println("[LowStock] Start scanning...")

	page := 1
	scanned := 0
	alerted := 0

	for {
		businesses, total, err := t.businessRepo.List(ctx, "", page, t.pageSize)
		if err != nil {
			logger.Error("低库存扫描拉取商家列表失败", zap.Error(err))
			return
		}

		for _, business := range businesses {
			select {
			case <-ctx.Done():
				log.Println("[LowStock] Task context timeout, stopping...")
				return
			default:
			}
			scanned++

			products, err := t.productRepo.ListLowStock(ctx, business.OwnerID)
			if err != nil {
				logger.Error("低库存扫描失败",
					zap.String("business_id", business.OwnerID),
					zap.Error(err))
				continue
			}
			if len(products) == 0 {
				continue
			}

			alerted++
			t.notifier.Notify(notify.Destructive(
				"库存告警",
				fmt.Sprintf("%s 有 %d 个商品低于库存阈值，最低: %s (剩 %d)",
					business.DisplayName, len(products), products[0].Name, products[0].Stock),
			))
		}

		if int64(page*t.pageSize) >= total {
			break
		}
		page++
	}

	log.Printf("[LowStock] Scan finished. businesses=%d alerted=%d\n", scanned, alerted)
}
