package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	courseforge "github.com/courseforge/courseforge"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCoursesCmd())
	rootCmd.AddCommand(getCourseCmd())
	rootCmd.AddCommand(getPageCmd())
}

func apiClient() (*courseforge.Client, bool) {
	ctx := readContext()
	if ctx.URL == "" || ctx.APIKey == "" {
		color.Red("no context set, run: courseforge context set -u <url> -k <api-key>")
		return nil, false
	}
	return courseforge.NewClient(ctx.URL, ctx.APIKey), true
}

type courseRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsPublished bool   `json:"isPublished"`
	Curriculums []struct {
		Title string `json:"title"`
		Pages []struct {
			Title string `json:"title"`
		} `json:"pages"`
	} `json:"curriculums"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func listCoursesCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "courses",
		Short:   "list courses",
		Example: "courseforge courses",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := apiClient()
			if !ok {
				return
			}

			var courses []courseRow
			if err := client.ListCourses(context.Background(), &courses); err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Title", "Published", "Chapters", "Pages", "Updated"})
			for _, course := range courses {
				pages := 0
				for _, cur := range course.Curriculums {
					pages += len(cur.Pages)
				}
				table.Append([]string{
					course.ID,
					course.Title,
					strconv.FormatBool(course.IsPublished),
					strconv.Itoa(len(course.Curriculums)),
					strconv.Itoa(pages),
					course.UpdatedAt.Format(time.RFC3339),
				})
			}
			table.Render()
		},
	}

	return command
}

func getCourseCmd() *cobra.Command {
	var courseID string

	var required = []string{"course-id"}

	command := &cobra.Command{
		Use:     "course",
		Short:   "show a course outline",
		Example: "courseforge course -c <course-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := apiClient()
			if !ok {
				return
			}

			var course courseRow
			if err := client.GetCourse(context.Background(), courseID, &course); err != nil {
				logrus.Error(err)
				return
			}

			color.Cyan(course.Title)
			for _, cur := range course.Curriculums {
				fmt.Println("  " + cur.Title)
				for _, page := range cur.Pages {
					fmt.Println("    - " + page.Title)
				}
			}
		},
	}

	command.Flags().StringVarP(&courseID, "course-id", "c", "", "course id (required)")
	command.Flags().SortFlags = false

	return command
}

func getPageCmd() *cobra.Command {
	var pageID string

	var required = []string{"page-id"}

	command := &cobra.Command{
		Use:     "page",
		Short:   "show a page with its context",
		Example: "courseforge page -p <page-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := apiClient()
			if !ok {
				return
			}

			var payload struct {
				Page struct {
					ID      string          `json:"id"`
					Title   string          `json:"title"`
					Content json.RawMessage `json:"content"`
				} `json:"page"`
				Curriculum struct {
					Title string `json:"title"`
				} `json:"curriculum"`
				Course struct {
					Title string `json:"title"`
				} `json:"course"`
			}
			if err := client.GetPage(context.Background(), pageID, &payload); err != nil {
				logrus.Error(err)
				return
			}

			color.Cyan("%s / %s / %s", payload.Course.Title, payload.Curriculum.Title, payload.Page.Title)
			fmt.Println(string(payload.Page.Content))
		},
	}

	command.Flags().StringVarP(&pageID, "page-id", "p", "", "page id (required)")
	command.Flags().SortFlags = false

	return command
}

func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if cmd.Flag(required).Changed == false {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Yellow("provided: %s\n", provided)
		}
		return true
	}

	return false
}
