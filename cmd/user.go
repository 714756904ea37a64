package cmd

import (
	"fmt"

	"github.com/nsxzhou1114/blog-core/internal/service"
	"github.com/spf13/cobra"
)

// userCmd 作者管理命令
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "作者管理命令",
	Long:  `创建与删除文章作者，删除作者会级联删除其全部文章`,
}

// createUserCmd 创建作者命令
// 示例：./blog-core user create alice
var createUserCmd = &cobra.Command{
	Use:   "create [username]",
	Short: "创建作者",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mustInitialize()

		user, err := service.NewUserService().Create(cmd.Context(), args[0])
		if err != nil {
			fail("创建作者失败: %v", err)
		}
		fmt.Printf("作者已创建: %s (ID: %d)\n", user.Username, user.ID)
	},
}

// deleteUserCmd 删除作者命令
// 示例：./blog-core user delete 3
var deleteUserCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "删除作者",
	Long:  `删除作者，其全部文章及文章标签关联一并删除`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fail("%v", err)
		}
		mustInitialize()

		if err := service.NewUserService().Delete(cmd.Context(), id); err != nil {
			fail("删除作者失败: %v", err)
		}
		fmt.Printf("作者 %d 已删除\n", id)
	},
}

func init() {
	userCmd.AddCommand(createUserCmd)
	userCmd.AddCommand(deleteUserCmd)

	rootCmd.AddCommand(userCmd)
}
