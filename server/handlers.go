package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realmkit/realmfeed/feed"
	"github.com/realmkit/realmfeed/model"
	"github.com/realmkit/realmfeed/utils"
	Logger "github.com/realmkit/realmfeed/utils/log"
)

// FeedServer binds the feed service's operations to JSON routes. All
// domain decisions live in the feed package; this layer only decodes
// requests and maps the error taxonomy to status codes.
type FeedServer struct {
	Service *feed.Service
}

func NewFeedServer(service *feed.Service) *FeedServer {
	return &FeedServer{Service: service}
}

func (s *FeedServer) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/feed/list", s.listFeedItems)
	api.GET("/feed/items/:id", s.getFeedItem)
	api.GET("/feed/pinned", s.getPinnedFeedItems)
	api.POST("/feed/vote", s.submitVote)
	api.POST("/feed/sync", s.syncProposals)
	api.POST("/members/list", s.listMembers)
}

type listFeedItemsInput struct {
	RealmID     string            `json:"realmId" binding:"required"`
	Environment model.Environment `json:"environment" binding:"required"`
	SortOrder   model.SortOrder   `json:"sortOrder" binding:"required"`
	feed.PageArgs
}

func (s *FeedServer) listFeedItems(c *gin.Context) {
	var input listFeedItemsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorBadRequest, "msg": err.Error()})
		return
	}

	connection, err := s.Service.ListFeedItems(
		c.Request.Context(), requestingUser(c), input.RealmID, input.Environment, input.SortOrder, input.PageArgs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, connection)
}

func (s *FeedServer) getFeedItem(c *gin.Context) {
	realmID := c.Query("realmId")
	env := model.Environment(c.Query("environment"))

	item, err := s.Service.GetFeedItem(
		c.Request.Context(), requestingUser(c), realmID, env, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *FeedServer) getPinnedFeedItems(c *gin.Context) {
	realmID := c.Query("realmId")
	env := model.Environment(c.Query("environment"))

	pinned, err := s.Service.GetPinnedFeedItems(c.Request.Context(), requestingUser(c), realmID, env)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pinned": pinned})
}

type submitVoteInput struct {
	RealmID     string            `json:"realmId" binding:"required"`
	Environment model.Environment `json:"environment" binding:"required"`
	FeedItemID  string            `json:"feedItemId" binding:"required"`
	VoteType    model.VoteType    `json:"voteType" binding:"required"`
}

func (s *FeedServer) submitVote(c *gin.Context) {
	var input submitVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorBadRequest, "msg": err.Error()})
		return
	}

	item, err := s.Service.SubmitVote(
		c.Request.Context(), requestingUser(c), input.RealmID, input.Environment, input.FeedItemID, input.VoteType)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type syncProposalsInput struct {
	RealmID     string            `json:"realmId" binding:"required"`
	Environment model.Environment `json:"environment" binding:"required"`
}

func (s *FeedServer) syncProposals(c *gin.Context) {
	var input syncProposalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorBadRequest, "msg": err.Error()})
		return
	}

	changed, err := s.Service.SyncProposals(c.Request.Context(), input.RealmID, input.Environment)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

type listMembersInput struct {
	RealmID     string            `json:"realmId" binding:"required"`
	Environment model.Environment `json:"environment" binding:"required"`
	feed.PageArgs
}

func (s *FeedServer) listMembers(c *gin.Context) {
	var input listMembersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": utils.ErrorBadRequest, "msg": err.Error()})
		return
	}

	connection, err := s.Service.ListMembers(
		c.Request.Context(), input.RealmID, input.Environment, input.PageArgs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, connection)
}

// requestingUser reads the member id injected by the auth middleware.
// Empty when the route is served with auth bypassed.
func requestingUser(c *gin.Context) string {
	return c.Request.Header.Get("sub")
}

// statusForError maps the feed error taxonomy to fixed status codes.
// Anything outside the taxonomy is an opaque internal failure.
func statusForError(err error) int {
	switch {
	case feed.IsMalformedData(err):
		return http.StatusBadRequest
	case feed.IsUnauthorized(err):
		return http.StatusUnauthorized
	case feed.IsNotFound(err):
		return http.StatusNotFound
	case feed.IsUnsupportedDevnet(err):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		Logger.Log.Errorln("internal failure serving ", c.FullPath(), ": ", err)
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}
