package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nsxzhou1114/blog-core/internal/dto"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/nsxzhou1114/blog-core/internal/service"
	"github.com/spf13/cobra"
)

// articleCmd 文章管理命令
var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "文章管理命令",
	Long:  `创建、发布、查询与删除文章`,
}

var articleFlags struct {
	authorID    uint
	title       string
	slug        string
	content     string
	contentFile string
	status      string
	filter      string
	tagID       uint
	keyword     string
	page        int
	pageSize    int
	purge       bool
	bySlug      bool
}

// createArticleCmd 创建文章命令
// 示例：./blog-core article create --author 1 --title "Hello World" --file hello.md --status published
var createArticleCmd = &cobra.Command{
	Use:   "create",
	Short: "创建文章",
	Long:  `创建文章，未指定 slug 时由标题生成`,
	Run: func(cmd *cobra.Command, args []string) {
		status, err := model.ParseStatus(articleFlags.status)
		if err != nil {
			fail("%v", err)
		}
		content := articleFlags.content
		if articleFlags.contentFile != "" {
			data, err := os.ReadFile(articleFlags.contentFile)
			if err != nil {
				fail("读取正文文件失败: %v", err)
			}
			content = string(data)
		}
		mustInitialize()

		article := &model.Article{
			AuthorID: articleFlags.authorID,
			Title:    articleFlags.title,
			Slug:     articleFlags.slug,
			Content:  content,
			Status:   status,
		}
		if err := service.NewArticleService().Save(cmd.Context(), article); err != nil {
			fail("创建文章失败: %v", err)
		}
		printArticle(article)
	},
}

// showArticleCmd 查看文章命令
// 示例：./blog-core article show hello-world
var showArticleCmd = &cobra.Command{
	Use:   "show [id|slug]",
	Short: "查看文章",
	Long:  `按ID或slug查看文章，纯数字参数先按ID查找，未找到再按slug查找；--slug 只按slug查找`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()

		svc := service.NewArticleService()
		var (
			article *model.Article
			err     error
		)
		if articleFlags.bySlug {
			article, err = svc.GetBySlug(cmd.Context(), args[0])
		} else {
			article, err = svc.GetByRef(cmd.Context(), args[0])
		}
		if err != nil {
			fail("获取文章失败: %v", err)
		}
		printArticle(article)

		tags, err := svc.Tags(cmd.Context(), article.ID)
		if err != nil {
			fail("获取文章标签失败: %v", err)
		}
		for _, tag := range tags {
			fmt.Printf("标签: %s (%s)\n", tag.Name, tag.Slug)
		}
	},
}

// publishArticleCmd 发布文章命令
// 示例：./blog-core article publish 3
var publishArticleCmd = &cobra.Command{
	Use:   "publish [id]",
	Short: "发布文章",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd.Context(), args[0], (*service.ArticleService).Publish)
	},
}

// unpublishArticleCmd 撤回文章命令
var unpublishArticleCmd = &cobra.Command{
	Use:   "unpublish [id]",
	Short: "撤回为草稿",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd.Context(), args[0], (*service.ArticleService).Unpublish)
	},
}

// archiveArticleCmd 归档文章命令
var archiveArticleCmd = &cobra.Command{
	Use:   "archive [id]",
	Short: "归档文章",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runTransition(cmd.Context(), args[0], (*service.ArticleService).Archive)
	},
}

// listArticlesCmd 文章列表命令
// 示例：./blog-core article list --status published --page 2
var listArticlesCmd = &cobra.Command{
	Use:   "list",
	Short: "文章列表",
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()

		result, err := service.NewArticleService().List(cmd.Context(), &dto.ArticleQuery{
			AuthorID: articleFlags.authorID,
			TagID:    articleFlags.tagID,
			Status:   articleFlags.filter,
			Keyword:  articleFlags.keyword,
			Page:     articleFlags.page,
			PageSize: articleFlags.pageSize,
		})
		if err != nil {
			fail("获取文章列表失败: %v", err)
		}

		fmt.Printf("共 %d 篇文章\n", result.Total)
		for _, a := range result.List {
			fmt.Printf("- [%d] %s (%s, %s) %s\n", a.ID, a.Title, a.Slug, a.Status, a.CreatedAt.Format("2006-01-02 15:04"))
		}
	},
}

// deleteArticleCmd 删除文章命令
// 示例：./blog-core article delete 3 --purge
var deleteArticleCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "删除文章",
	Long:  `默认软删除：文章从查询中隐藏，标签关联与slug占用保留。--purge 物理删除文章并级联删除其标签关联`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fail("%v", err)
		}
		mustInitialize()

		svc := service.NewArticleService()
		if articleFlags.purge {
			err = svc.Purge(cmd.Context(), id)
		} else {
			err = svc.Delete(cmd.Context(), id)
		}
		if err != nil {
			fail("删除文章失败: %v", err)
		}
		fmt.Printf("文章 %d 已删除\n", id)
	},
}

func init() {
	createArticleCmd.Flags().UintVar(&articleFlags.authorID, "author", 0, "作者ID")
	createArticleCmd.Flags().StringVar(&articleFlags.title, "title", "", "标题")
	createArticleCmd.Flags().StringVar(&articleFlags.slug, "slug", "", "slug，留空由标题生成")
	createArticleCmd.Flags().StringVar(&articleFlags.content, "content", "", "正文")
	createArticleCmd.Flags().StringVar(&articleFlags.contentFile, "file", "", "从文件读取正文")
	createArticleCmd.Flags().StringVar(&articleFlags.status, "status", model.StatusDraft.String(), "状态: draft|published|archived")
	createArticleCmd.MarkFlagRequired("author")
	createArticleCmd.MarkFlagRequired("title")

	listArticlesCmd.Flags().UintVar(&articleFlags.authorID, "author", 0, "按作者过滤")
	listArticlesCmd.Flags().UintVar(&articleFlags.tagID, "tag", 0, "按标签过滤")
	listArticlesCmd.Flags().StringVar(&articleFlags.filter, "status", "", "按状态过滤")
	listArticlesCmd.Flags().StringVar(&articleFlags.keyword, "keyword", "", "标题关键词")
	listArticlesCmd.Flags().IntVar(&articleFlags.page, "page", 1, "页码")
	listArticlesCmd.Flags().IntVar(&articleFlags.pageSize, "size", 10, "每页数量")

	showArticleCmd.Flags().BoolVar(&articleFlags.bySlug, "slug", false, "只按slug查找")

	deleteArticleCmd.Flags().BoolVar(&articleFlags.purge, "purge", false, "物理删除，同时级联删除标签关联")

	articleCmd.AddCommand(createArticleCmd)
	articleCmd.AddCommand(showArticleCmd)
	articleCmd.AddCommand(publishArticleCmd)
	articleCmd.AddCommand(unpublishArticleCmd)
	articleCmd.AddCommand(archiveArticleCmd)
	articleCmd.AddCommand(listArticlesCmd)
	articleCmd.AddCommand(deleteArticleCmd)

	rootCmd.AddCommand(articleCmd)
}

func runTransition(ctx context.Context, arg string, fn func(*service.ArticleService, context.Context, uint) (*model.Article, error)) {
	id, err := parseID(arg)
	if err != nil {
		fail("%v", err)
	}
	mustInitialize()

	article, err := fn(service.NewArticleService(), ctx, id)
	if err != nil {
		fail("更新文章状态失败: %v", err)
	}
	printArticle(article)
}

func printArticle(a *model.Article) {
	fmt.Printf("文章: %s (ID: %d)\n", a.Title, a.ID)
	fmt.Printf("slug: %s\n", a.Slug)
	fmt.Printf("状态: %s\n", a.Status)
	if a.PublishedAt != nil {
		fmt.Printf("发布时间: %s\n", a.PublishedAt.Format("2006-01-02 15:04:05"))
	}
}
