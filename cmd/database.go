package cmd

import (
	"fmt"

	"github.com/nsxzhou1114/blog-core/internal/config"
	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/spf13/cobra"
)

// databaseCmd 数据库管理命令
var databaseCmd = &cobra.Command{
	Use:   "db",
	Short: "数据库管理命令",
	Long:  `数据库管理相关的命令，包括建表与连接状态检查`,
}

// initTablesCmd 初始化数据库表命令
// 示例：./blog-core db init-tables
var initTablesCmd = &cobra.Command{
	Use:   "init-tables",
	Short: "初始化数据库表",
	Long:  `创建 users、blog_article、blog_tag、blog_article_tag 表及其外键与索引`,
	Run: func(cmd *cobra.Command, args []string) {
		initializeTables()
	},
}

// dbStatusCmd 数据库状态命令
// 示例：./blog-core db status
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "数据库状态",
	Long:  `显示数据库连接池状态与各表记录数`,
	Run: func(cmd *cobra.Command, args []string) {
		showDatabaseStatus()
	},
}

func init() {
	databaseCmd.AddCommand(initTablesCmd)
	databaseCmd.AddCommand(dbStatusCmd)

	rootCmd.AddCommand(databaseCmd)
}

// initializeTables 初始化数据库表
func initializeTables() {
	mustInitialize()

	if err := model.InitTables(database.GetDB()); err != nil {
		fail("初始化数据库表失败: %v", err)
	}
	fmt.Println("数据库表初始化完成")
}

// showDatabaseStatus 显示数据库状态
func showDatabaseStatus() {
	mustInitialize()

	db := database.GetDB()
	sqlDB, err := db.DB()
	if err != nil {
		fail("获取数据库连接失败: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		fail("数据库连接异常: %v", err)
	}

	stats := sqlDB.Stats()
	fmt.Println("=== 数据库状态 ===")
	fmt.Printf("驱动: %s\n", config.GetConfig().Database.Driver)
	fmt.Printf("打开连接数: %d (使用中: %d, 空闲: %d)\n", stats.OpenConnections, stats.InUse, stats.Idle)

	fmt.Println("\n表记录数:")
	for _, table := range model.TableNames() {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			fmt.Printf("- %s: 查询失败 (%v)\n", table, err)
			continue
		}
		fmt.Printf("- %s: %d\n", table, count)
	}
}
