package cmd

import (
	"fmt"

	"github.com/nsxzhou1114/blog-core/internal/dto"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/nsxzhou1114/blog-core/internal/service"
	"github.com/spf13/cobra"
)

// tagCmd 标签管理命令
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "标签管理命令",
}

var tagFlags struct {
	slug     string
	keyword  string
	page     int
	pageSize int
}

// createTagCmd 创建标签命令
// 示例：./blog-core tag create "Go Lang"
var createTagCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "创建标签",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()

		tag := &model.Tag{Name: args[0], Slug: tagFlags.slug}
		if err := service.NewTagService().Save(cmd.Context(), tag); err != nil {
			fail("创建标签失败: %v", err)
		}
		fmt.Printf("标签已创建: %s (ID: %d, slug: %s)\n", tag.Name, tag.ID, tag.Slug)
	},
}

// listTagsCmd 标签列表命令
var listTagsCmd = &cobra.Command{
	Use:   "list",
	Short: "标签列表",
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()

		result, err := service.NewTagService().List(cmd.Context(), &dto.TagQuery{
			Keyword:  tagFlags.keyword,
			Page:     tagFlags.page,
			PageSize: tagFlags.pageSize,
		})
		if err != nil {
			fail("获取标签列表失败: %v", err)
		}
		fmt.Printf("共 %d 个标签\n", result.Total)
		for _, tag := range result.List {
			fmt.Printf("- [%d] %s (%s)\n", tag.ID, tag.Name, tag.Slug)
		}
	},
}

// tagArticlesCmd 标签下的文章
var tagArticlesCmd = &cobra.Command{
	Use:   "articles [tag-id]",
	Short: "标签下的文章",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fail("%v", err)
		}
		mustInitialize()

		articles, err := service.NewTagService().Articles(cmd.Context(), id)
		if err != nil {
			fail("获取标签文章失败: %v", err)
		}
		for _, a := range articles {
			fmt.Printf("- [%d] %s (%s)\n", a.ID, a.Title, a.Status)
		}
	},
}

// attachTagCmd 为文章添加标签
// 示例：./blog-core tag attach 3 5
var attachTagCmd = &cobra.Command{
	Use:   "attach [article-id] [tag-id]",
	Short: "为文章添加标签",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		articleID, tagID := parseLinkArgs(args)
		mustInitialize()

		link, err := service.NewTagService().Attach(cmd.Context(), articleID, tagID)
		if err != nil {
			fail("添加标签失败: %v", err)
		}
		fmt.Printf("已关联: %s\n", link)
	},
}

// detachTagCmd 移除文章标签
var detachTagCmd = &cobra.Command{
	Use:   "detach [article-id] [tag-id]",
	Short: "移除文章标签",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		articleID, tagID := parseLinkArgs(args)
		mustInitialize()

		if err := service.NewTagService().Detach(cmd.Context(), articleID, tagID); err != nil {
			fail("移除标签失败: %v", err)
		}
		fmt.Println("已移除")
	},
}

// deleteTagCmd 删除标签
var deleteTagCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "删除标签",
	Long:  `删除标签，其文章关联一并删除`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fail("%v", err)
		}
		mustInitialize()

		if err := service.NewTagService().Delete(cmd.Context(), id); err != nil {
			fail("删除标签失败: %v", err)
		}
		fmt.Printf("标签 %d 已删除\n", id)
	},
}

func init() {
	createTagCmd.Flags().StringVar(&tagFlags.slug, "slug", "", "slug，留空由名称生成")
	listTagsCmd.Flags().StringVar(&tagFlags.keyword, "keyword", "", "名称关键词")
	listTagsCmd.Flags().IntVar(&tagFlags.page, "page", 1, "页码")
	listTagsCmd.Flags().IntVar(&tagFlags.pageSize, "size", 20, "每页数量")

	tagCmd.AddCommand(createTagCmd)
	tagCmd.AddCommand(listTagsCmd)
	tagCmd.AddCommand(tagArticlesCmd)
	tagCmd.AddCommand(attachTagCmd)
	tagCmd.AddCommand(detachTagCmd)
	tagCmd.AddCommand(deleteTagCmd)

	rootCmd.AddCommand(tagCmd)
}

func parseLinkArgs(args []string) (uint, uint) {
	articleID, err := parseID(args[0])
	if err != nil {
		fail("%v", err)
	}
	tagID, err := parseID(args[1])
	if err != nil {
		fail("%v", err)
	}
	return articleID, tagID
}
