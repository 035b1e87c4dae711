package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// Forum lists discussion threads, pinned ones first as the backend orders
// them.
func (a *App) Forum(ctx context.Context) error {
	if !a.visit(guard.RouteForum) {
		return nil
	}

	posts, err := a.backend.ForumPosts(ctx, "")
	if err != nil {
		return a.reportErr("Could not load forum:", err)
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet. Start a discussion with 'post'.")
		return nil
	}
	for _, p := range posts {
		pin := ""
		if p.IsPinned != 0 {
			pin = "* "
		}
		fmt.Fprintf(a.out, "#%d  %s%s — %s (%d comments)\n", p.ID, pin, common.Truncate(p.Title, 50), p.AuthorName, p.CommentsCount)
	}
	return nil
}

// Post opens a new discussion thread.
func (a *App) Post(ctx context.Context) error {
	if !a.visit(guard.RouteForum) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title cannot be empty.")
		return common.ErrValidation
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (optional)", a.out)
	if err != nil {
		return err
	}

	id, err := a.backend.CreateForumPost(ctx, models.NewForumPost{Title: title, Content: content, Category: category})
	if err != nil {
		return a.reportErr("Could not create post:", err)
	}
	fmt.Fprintf(a.out, "Posted as #%d\n", id)
	return nil
}

// Comments shows a thread's replies and offers to add one.
func (a *App) Comments(ctx context.Context, idText string) error {
	if !a.visit(guard.RouteForum) {
		return nil
	}
	postID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: comments <post id>")
		return common.ErrValidation
	}

	comments, err := a.backend.Comments(ctx, postID)
	if err != nil {
		return a.reportErr("Could not load comments:", err)
	}
	for _, c := range comments {
		fmt.Fprintf(a.out, "%s: %s\n", c.AuthorName, c.Content)
	}

	reply, err := getSimpleText(a.reader, "Reply (leave empty to skip)", a.out)
	if err != nil {
		return err
	}
	if reply == "" {
		return nil
	}
	if err := a.backend.AddComment(ctx, postID, reply); err != nil {
		return a.reportErr("Could not add comment:", err)
	}
	fmt.Fprintln(a.out, "Comment added.")
	return nil
}
