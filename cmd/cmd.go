package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/nsxzhou1114/blog-core/internal/config"
	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/logger"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "blog-core",
	Short: "博客数据管理工具",
	Long:  `管理博客的作者、文章与标签，文章 slug 与发布状态由程序自动维护`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
		database.Close()
	},
}

func init() {
	// 添加全局标志
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config", "配置文件路径")
}

// Execute 执行根命令，收到中断信号时取消正在进行的数据库操作
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initializeSystem 初始化系统
func initializeSystem() error {
	// 初始化配置
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("配置初始化失败: %v", err)
	}

	// 初始化日志
	if err := logger.Init(); err != nil {
		return fmt.Errorf("日志初始化失败: %v", err)
	}

	// 配置文件修改后热更新日志级别
	config.Watch(func(c *config.Config) {
		logger.SetLevel(c.Log.Level)
		logger.Info("配置已重新加载", zap.String("log_level", c.Log.Level))
	})

	// 初始化数据库，连接失败时 GetDB 直接panic
	db := database.GetDB()

	// 初始化数据库表
	if err := model.InitTables(db); err != nil {
		return fmt.Errorf("初始化数据库表失败: %v", err)
	}
	return nil
}

// mustInitialize 初始化失败时直接退出
func mustInitialize() {
	if err := initializeSystem(); err != nil {
		fmt.Printf("系统初始化失败: %v\n", err)
		os.Exit(1)
	}
}

// parseID 解析命令行中的ID参数
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("无效的ID: %q", s)
	}
	return uint(id), nil
}

// fail 打印错误并以非零状态退出
func fail(format string, args ...interface{}) {
	logger.Errorf(format, args...)
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
