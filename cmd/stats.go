package cmd

import (
	"fmt"

	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/nsxzhou1114/blog-core/internal/service"
	"github.com/spf13/cobra"
)

// statsCmd 统计命令
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "统计信息命令",
}

// articleStatsCmd 文章统计命令
var articleStatsCmd = &cobra.Command{
	Use:   "articles",
	Short: "文章统计信息",
	Long:  `显示各状态文章数量与最近发布的文章`,
	Run: func(cmd *cobra.Command, args []string) {
		showArticleStats(cmd)
	},
}

func init() {
	statsCmd.AddCommand(articleStatsCmd)
	rootCmd.AddCommand(statsCmd)
}

// showArticleStats 显示文章统计信息
func showArticleStats(cmd *cobra.Command) {
	mustInitialize()

	counts, err := service.NewArticleService().CountByStatus(cmd.Context())
	if err != nil {
		fail("统计文章失败: %v", err)
	}

	fmt.Println("=== 文章统计信息 ===")
	fmt.Println("文章状态分布:")
	for _, c := range counts {
		fmt.Printf("- %s: %d\n", c.Status, c.Count)
	}

	// 最近发布的文章
	var recent []model.Article
	database.GetDB().WithContext(cmd.Context()).
		Where("status = ?", model.StatusPublished).
		Order("published_at DESC").
		Limit(5).
		Find(&recent)

	fmt.Println("\n最近发布:")
	for _, a := range recent {
		if a.PublishedAt == nil {
			continue
		}
		fmt.Printf("- %s - %s\n", a.Title, a.PublishedAt.Format("2006-01-02 15:04"))
	}
}
