package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/caso-enron/comments-backend/pkg/client"
)

const defaultServer = "http://localhost:8080"

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: commentctl <list|post|edit|delete> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  list                          show the comment board")
	fmt.Fprintln(os.Stderr, "  post   -name -email -text     publish a comment")
	fmt.Fprintln(os.Stderr, "  edit   -id -text              edit one of your comments")
	fmt.Fprintln(os.Stderr, "  delete -id [-yes]             delete one of your comments")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "The server address comes from COMMENTS_API (default "+defaultServer+").")
	os.Exit(2)
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
	}

	server := os.Getenv("COMMENTS_API")
	if server == "" {
		server = defaultServer
	}

	c, err := client.New(server)
	if err != nil {
		log.Fatalf("Failed to initialize client: %v", err)
	}

	ctx := context.Background()
	if err := c.Ping(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	switch os.Args[1] {
	case "list":
		runList(ctx, c)
	case "post":
		runPost(ctx, c, os.Args[2:])
	case "edit":
		runEdit(ctx, c, os.Args[2:])
	case "delete":
		runDelete(ctx, c, os.Args[2:])
	default:
		usage()
	}
}

func runList(ctx context.Context, c *client.Client) {
	fmt.Println("Loading comments...")

	comments, err := c.List(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch comments: %v", err)
	}

	if len(comments) == 0 {
		fmt.Println("💬 No comments yet. Be the first to share your thoughts!")
		return
	}

	fmt.Printf("%d comment(s):\n\n", len(comments))
	for _, comment := range comments {
		owner := ""
		if c.Owns(comment) {
			owner = " (yours)"
		}
		fmt.Printf("[%s] %s <%s>%s — %s\n", comment.ID, comment.Name, comment.Email, owner, comment.Date)
		fmt.Printf("    %s\n", comment.Text)
		if comment.UpdatedAt != nil {
			fmt.Println("    (edited)")
		}
		fmt.Println()
	}
}

func runPost(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	text := fs.String("text", "", "the comment text (max 1000 characters)")
	fs.Parse(args)

	comment, err := c.Post(ctx, *name, *email, *text)
	if err != nil {
		log.Fatalf("Failed to publish comment: %v", err)
	}

	fmt.Println("✅ Comment published successfully")
	fmt.Printf("   id: %s\n", comment.ID)
}

func runEdit(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	id := fs.String("id", "", "the comment id")
	text := fs.String("text", "", "the new text (max 1000 characters)")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("edit requires -id")
	}

	if !ownsComment(ctx, c, *id) {
		log.Fatal("You cannot edit a comment that is not yours.")
	}

	comment, err := c.Edit(ctx, *id, *text)
	if err != nil {
		log.Fatalf("Failed to update comment: %v", err)
	}

	fmt.Println("✅ Comment updated successfully")
	fmt.Printf("   %s\n", comment.Text)
}

func runDelete(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "the comment id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if *id == "" {
		log.Fatal("delete requires -id")
	}

	// Ownership is checked here before anything is sent, like the board's
	// delete button that only appears on your own comments.
	if !ownsComment(ctx, c, *id) {
		log.Fatal("You cannot delete a comment that is not yours.")
	}

	if !*yes && !confirm("Are you sure you want to delete this comment?") {
		fmt.Println("Canceled.")
		return
	}

	if err := c.Delete(ctx, *id); err != nil {
		log.Fatalf("Failed to delete comment: %v", err)
	}
	fmt.Println("✅ Comment deleted successfully")
}

func ownsComment(ctx context.Context, c *client.Client, id string) bool {
	comments, err := c.List(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch comments: %v", err)
	}
	for _, comment := range comments {
		if comment.ID == id {
			return c.Owns(comment)
		}
	}
	// Unknown id: let the server answer with its 404.
	return true
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
