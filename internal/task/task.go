package task

import (
	"time"

	"github.com/robfig/cron/v3"

	"intergalactic/internal/logger"
	"intergalactic/internal/service"
)

var scheduler *cron.Cron

// Start 启动定时任务
func Start() {
	timezone, _ := time.LoadLocation("Asia/Shanghai")
	scheduler = cron.New(cron.WithSeconds(), cron.WithLocation(timezone))

	// 每分钟把Redis中累积的浏览量写回数据库
	if _, err := scheduler.AddFunc("0 */1 * * * *", service.NewViewService().Flush); err != nil {
		logger.Errorf("注册浏览量同步任务失败: %v", err)
	}

	scheduler.Start()
	logger.Info("定时任务已启动")
}

// Stop 停止定时任务，执行中的任务跑完再退出
func Stop() {
	if scheduler != nil {
		ctx := scheduler.Stop()
		<-ctx.Done()
	}
	// 停机前把剩余浏览量刷回数据库
	service.NewViewService().Flush()
}
