package handler

import (
	"github.com/contentdesk/cms/internal/core/ports"
)

// --- Request → Service input ---

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		Status:  req.Status,
		Tags:    req.Tags,
		Image:   req.Image,
	}
}

func toUpdatePostInput(req updatePostRequest) ports.UpdatePostInput {
	return ports.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
		Tags:    req.Tags,
		Image:   req.Image,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
}

func toCreateMediaInput(req createMediaRequest) ports.CreateMediaInput {
	return ports.CreateMediaInput{
		Alt:      req.Alt,
		Filename: req.Filename,
		MimeType: req.MimeType,
		Filesize: req.Filesize,
	}
}

// --- Service output → Response ---

func toPostPageResponse(p *ports.PostPage) postPageResponse {
	return postPageResponse{
		Docs:       p.Docs,
		TotalDocs:  p.TotalDocs,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toUserPageResponse(p *ports.UserPage) userPageResponse {
	return userPageResponse{
		Docs:       p.Docs,
		TotalDocs:  p.TotalDocs,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func toMediaPageResponse(p *ports.MediaPage) mediaPageResponse {
	return mediaPageResponse{
		Docs:       p.Docs,
		TotalDocs:  p.TotalDocs,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
