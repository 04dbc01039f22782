// Package client 通过 REST API 访问记录，供命令行工具复用导入和报表逻辑
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financials/models"
	"financials/store"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL 本地服务的 API 地址
const DefaultBaseURL = "http://127.0.0.1:8080/api"

// Client 是基于 resty 的 store.RecordStore 实现
type Client struct {
	httpClient *resty.Client
}

var _ store.RecordStore = (*Client)(nil)

// New 创建客户端，baseURL 为空时使用 DefaultBaseURL
func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{httpClient: restyClient}
}

// envelope 服务端通用响应
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do 发送请求并把 data 解码到 out；非 2xx 按状态码映射为存储错误
func (c *Client) do(ctx context.Context, op, method, path string, body interface{}, query map[string]string, out interface{}) error {
	env := new(envelope)
	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(env).
		SetError(env)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &store.OpError{Op: op, Err: fmt.Errorf("请求 %s %s 失败: %w", method, path, err)}
	}
	if resp.IsError() {
		return &store.OpError{Op: op, Err: statusError(resp.StatusCode(), env.Message)}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &store.OpError{Op: op, Err: fmt.Errorf("解析响应失败: %w", err)}
		}
	}
	return nil
}

func statusError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", store.ErrDuplicate, message)
	}
	return errors.Join(store.ErrRejected, fmt.Errorf("HTTP %d: %s", status, message))
}

func propertyQuery(propertyID *uint) map[string]string {
	if propertyID == nil {
		return nil
	}
	return map[string]string{"property": strconv.FormatUint(uint64(*propertyID), 10)}
}

func (c *Client) ListProperties(ctx context.Context) ([]models.Property, error) {
	var list []models.Property
	if err := c.do(ctx, "list properties", http.MethodGet, "/properties", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	p := new(models.Property)
	if err := c.do(ctx, "get property", http.MethodGet, fmt.Sprintf("/properties/%d", id), nil, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) CreateProperty(ctx context.Context, p *models.Property) error {
	body := map[string]interface{}{
		"name":          p.Name,
		"units":         p.Units,
		"property_type": p.PropertyType,
		"location":      p.Location,
	}
	return c.do(ctx, "create property", http.MethodPost, "/properties", body, nil, p)
}

func (c *Client) ListExpenses(ctx context.Context, propertyID *uint) ([]models.Expense, error) {
	var list []models.Expense
	if err := c.do(ctx, "list expenses", http.MethodGet, "/expenses", nil, propertyQuery(propertyID), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateExpense(ctx context.Context, e *models.Expense) error {
	return c.do(ctx, "create expense", http.MethodPost, "/expenses", e, nil, e)
}

func (c *Client) ListUnits(ctx context.Context, propertyID *uint) ([]models.Unit, error) {
	var list []models.Unit
	if err := c.do(ctx, "list units", http.MethodGet, "/units", nil, propertyQuery(propertyID), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateUnit(ctx context.Context, u *models.Unit) error {
	return c.do(ctx, "create unit", http.MethodPost, "/units", u, nil, u)
}
