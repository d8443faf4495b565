package vtop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/config"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
)

const (
	pathContent           = "/vtop/content"
	pathStudentDA         = "/vtop/examinations/StudentDA"
	pathViewTimetable     = "/vtop/processViewTimeTable"
	pathDigitalAssignment = "/vtop/examinations/doDigitalAssignment"
	pathProcessAssignment = "/vtop/examinations/processDigitalAssignment"
)

// Client scrapes the VTOP portal. Every request after the content page
// carries the CSRF token and authorized id extracted from it.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a portal client.
func New(cfg config.VTOPConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// PageContext loads the content page and extracts the CSRF token and the
// authorized id hidden inputs.
func (c *Client) PageContext(ctx context.Context) (*models.PortalSession, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathContent, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build content request")
	}
	doc, err := c.fetchDocument(req)
	if err != nil {
		return nil, err
	}

	csrf, csrfOK := doc.Find(`input[name="_csrf"]`).First().Attr("value")
	id, idOK := doc.Find(`input[name="authorizedID"]`).First().Attr("value")
	if !csrfOK || !idOK || csrf == "" || id == "" {
		return nil, appErrors.Clone(appErrors.ErrScrapeFailed, "csrf token or authorized id not found")
	}
	return &models.PortalSession{CSRFToken: csrf, AuthorizedID: id}, nil
}

// SemesterOptions scrapes the semester dropdown from the digital-assignment
// landing page.
func (c *Client) SemesterOptions(ctx context.Context, session *models.PortalSession) ([]models.SemesterOption, error) {
	form := url.Values{}
	form.Set("_csrf", session.CSRFToken)
	form.Set("authorizedID", session.AuthorizedID)
	form.Set("verifyMenu", "true")
	form.Set("nocache", fmt.Sprintf("%d", time.Now().UnixMilli()))

	doc, err := c.postForm(ctx, pathStudentDA, form)
	if err != nil {
		return nil, err
	}

	sel := doc.Find(`select[name="semesterSubId"]`).First()
	if sel.Length() == 0 {
		return nil, appErrors.Clone(appErrors.ErrScrapeFailed, "semester dropdown not found")
	}

	var options []models.SemesterOption
	sel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		if value == "" || strings.Contains(value, "Choose") {
			return
		}
		options = append(options, models.SemesterOption{
			ID:   value,
			Name: strings.TrimSpace(opt.Text()),
		})
	})
	return options, nil
}

// Timetable scrapes the raw per-subject schedule rows for a semester.
func (c *Client) Timetable(ctx context.Context, session *models.PortalSession, semesterID string) ([]models.RawScheduleEntry, error) {
	form := url.Values{}
	form.Set("_csrf", session.CSRFToken)
	form.Set("semesterSubId", semesterID)
	form.Set("authorizedID", session.AuthorizedID)
	form.Set("x", gmtNow())

	doc, err := c.postForm(ctx, pathViewTimetable, form)
	if err != nil {
		return nil, err
	}

	rows := doc.Find("#studentDetailsList table > tbody > tr")
	if rows.Length() == 0 {
		c.logger.Warn("timetable table not found")
		return nil, nil
	}

	var entries []models.RawScheduleEntry
	// First row is the header, last row the portal summary line.
	rows.Slice(1, rows.Length()-1).Each(func(_ int, row *goquery.Selection) {
		entries = append(entries, models.RawScheduleEntry{
			SubjectName: cellText(row, "td:nth-child(3) > p:nth-child(1)"),
			SlotNumber:  cellText(row, "td:nth-child(8) > p:nth-child(1)"),
			Room:        cellText(row, "td:nth-child(8) > p:nth-child(3)"),
		})
	})
	return entries, nil
}

// ClassIDs lists the class ids enrolled for the semester.
func (c *Client) ClassIDs(ctx context.Context, session *models.PortalSession, semesterID string) ([]string, error) {
	form := url.Values{}
	form.Set("authorizedID", session.AuthorizedID)
	form.Set("semesterSubId", semesterID)
	form.Set("_csrf", session.CSRFToken)

	doc, err := c.postForm(ctx, pathDigitalAssignment, form)
	if err != nil {
		return nil, err
	}

	var ids []string
	doc.Find(".tableContent td:nth-child(2)").Each(func(_ int, td *goquery.Selection) {
		if id := strings.TrimSpace(td.Text()); id != "" {
			ids = append(ids, id)
		}
	})
	if len(ids) == 0 {
		return nil, appErrors.Clone(appErrors.ErrScrapeFailed, "no class ids found")
	}
	return ids, nil
}

// DigitalAssignments scrapes the per-class assignment pages. A class whose
// page fails to load or parse is skipped, not fatal.
func (c *Client) DigitalAssignments(ctx context.Context, session *models.PortalSession, classIDs []string) (*models.RawAssignmentData, error) {
	data := &models.RawAssignmentData{
		RegNo:   session.AuthorizedID,
		Courses: []models.RawCourse{},
	}

	for _, classID := range classIDs {
		course, err := c.classAssignments(ctx, session, classID)
		if err != nil {
			c.logger.Warn("skipping class scrape",
				zap.String("class_id", classID), zap.Error(err))
			continue
		}
		data.Courses = append(data.Courses, *course)
	}
	return data, nil
}

func (c *Client) classAssignments(ctx context.Context, session *models.PortalSession, classID string) (*models.RawCourse, error) {
	form := url.Values{}
	form.Set("authorizedID", session.AuthorizedID)
	form.Set("x", gmtNow())
	form.Set("classId", classID)
	form.Set("_csrf", session.CSRFToken)

	doc, err := c.postForm(ctx, pathProcessAssignment, form)
	if err != nil {
		return nil, err
	}

	rows := doc.Find(".fixedContent.tableContent")
	course := &models.RawCourse{
		ClassID:  classID,
		DueDates: []models.RawDueDate{},
	}
	if rows.Length() > 0 {
		first := rows.First()
		course.CourseCode = strings.TrimSpace(first.Find("td").Eq(1).Text())
		course.CourseTitle = strings.TrimSpace(first.Find("td").Eq(2).Text())
	}

	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		due := models.RawDueDate{
			AssessmentTitle: strings.TrimSpace(cells.Eq(1).Text()),
			LastUpdated:     strings.TrimSpace(cells.Eq(6).Text()),
		}
		if span := cells.Eq(4).Find("span").First(); span.Length() > 0 {
			date := strings.TrimSpace(span.Text())
			due.DateDue = &date
			due.DateColor = styleColor(span.AttrOr("style", ""))
		}
		course.DueDates = append(course.DueDates, due)
	})
	return course, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build portal request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return c.fetchDocument(req)
}

func (c *Client) fetchDocument(req *http.Request) (*goquery.Document, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrScrapeFailed.Code, appErrors.ErrScrapeFailed.Status, "portal request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, appErrors.Wrap(
			fmt.Errorf("status %d", resp.StatusCode),
			appErrors.ErrScrapeFailed.Code, appErrors.ErrScrapeFailed.Status, "portal returned error",
		)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrScrapeFailed.Code, appErrors.ErrScrapeFailed.Status, "parse portal response")
	}
	return doc, nil
}

func cellText(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).First().Text())
}

// styleColor pulls the color value out of an inline style attribute.
func styleColor(style string) string {
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "color" {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

func gmtNow() string {
	return time.Now().UTC().Format(http.TimeFormat)
}
