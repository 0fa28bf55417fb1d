// Package classify crawls candidate websites and asks the LLM whether the
// company sells software, then extracts its commercial attributes.
package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/resilience"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

// sparseContentThreshold is the minimum number of extracted characters
// across all crawled pages before the screen call runs. Below it the record
// is kept as software but classified with the no-data sentinel, so a thin
// landing page never costs an LLM call and never drops a candidate.
const sparseContentThreshold = 1000

// maxSelectedLinks caps how many subpages are crawled beyond the landing page.
const maxSelectedLinks = 2

var errEmptyReply = eris.New("classify: empty model reply")

var (
	urlRe         = regexp.MustCompile(`https?://\S+`)
	descriptionRe = regexp.MustCompile(`Product/Service:\s*(.+)`)
	industryRe    = regexp.MustCompile(`Industry:\s*(.+)`)
	clientTypeRe  = regexp.MustCompile(`Client Type:\s*(.+)`)
	revenueRe     = regexp.MustCompile(`Revenue Model:\s*(.+)`)
	regionRe      = regexp.MustCompile(`Market Region:\s*(.+)`)
)

// Crawler fetches the raw bytes of a page, typically through a rendering
// scrape proxy.
type Crawler interface {
	Get(ctx context.Context, targetURL string) ([]byte, error)
}

// PageCache stores extracted page text so repeat runs skip paid crawls.
type PageCache interface {
	GetPage(ctx context.Context, pageURL string) (text string, ok bool, err error)
	PutPage(ctx context.Context, pageURL, text string) error
}

// Page is one crawled page reduced to its structured text.
type Page struct {
	URL  string
	Text string
}

// Classifier screens and classifies a company website.
type Classifier struct {
	crawler Crawler
	llm     anthropic.Client
	cache   PageCache // optional
	model   string
	retry   resilience.RetryConfig
}

// NewClassifier returns a Classifier using the given crawler and LLM model.
// cache may be nil.
func NewClassifier(crawler Crawler, llm anthropic.Client, cache PageCache, llmModel string) *Classifier {
	return &Classifier{
		crawler: crawler,
		llm:     llm,
		cache:   cache,
		model:   llmModel,
		retry: resilience.RetryConfig{
			MaxAttempts: 2,
			Delay:       5 * time.Second,
			ShouldRetry: func(err error) bool {
				return eris.Is(err, errEmptyReply) || resilience.IsTransient(err)
			},
			OnRetry: resilience.RetryLogger("anthropic", "classify"),
		},
	}
}

// Classify crawls the website and returns the screen verdict together with
// the extracted attributes. It never returns an error: crawl or model
// failures degrade to the insufficient-data screen and the no-data sentinel.
func (c *Classifier) Classify(ctx context.Context, websiteURL string) (model.Screen, model.Classification) {
	pages, err := c.crawl(ctx, websiteURL)
	if err != nil {
		zap.L().Warn("classify: crawl failed",
			zap.String("website", websiteURL),
			zap.Error(err))
		return model.ScreenInsufficientData, model.SentinelClassification(model.SentinelNoData)
	}

	total := 0
	for _, p := range pages {
		total += len(p.Text)
	}
	if total < sparseContentThreshold {
		zap.L().Info("classify: sparse content, skipping screen",
			zap.String("website", websiteURL),
			zap.Int("chars", total))
		return model.ScreenSoftware, model.SentinelClassification(model.SentinelNoData)
	}

	screen, err := c.screen(ctx, pages)
	if err != nil {
		zap.L().Warn("classify: screen failed",
			zap.String("website", websiteURL),
			zap.Error(err))
		return model.ScreenInsufficientData, model.SentinelClassification(model.SentinelNoData)
	}
	if screen == model.ScreenHardware {
		return model.ScreenHardware, model.SentinelClassification(model.SentinelNotSaaS)
	}

	cls, err := c.analyze(ctx, pages)
	if err != nil {
		zap.L().Warn("classify: attribute extraction failed",
			zap.String("website", websiteURL),
			zap.Error(err))
		return model.ScreenSoftware, model.SentinelClassification(model.SentinelNoData)
	}
	return model.ScreenSoftware, cls
}

// crawl fetches the landing page, asks the LLM for the most relevant
// subpages, and fetches those too. Subpage failures are logged and skipped;
// only a landing-page failure aborts the crawl.
func (c *Classifier) crawl(ctx context.Context, websiteURL string) ([]Page, error) {
	body, err := c.crawler.Get(ctx, websiteURL)
	if err != nil {
		return nil, eris.Wrap(err, "classify: fetch landing page")
	}
	pages := []Page{{URL: websiteURL, Text: StructuredText(body)}}
	c.cachePut(ctx, websiteURL, pages[0].Text)

	links := CollectLinks(body, websiteURL)
	for _, link := range c.selectLinks(ctx, links) {
		text, err := c.pageText(ctx, link)
		if err != nil {
			zap.L().Warn("classify: fetch subpage failed",
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		pages = append(pages, Page{URL: link, Text: text})
	}
	return pages, nil
}

func (c *Classifier) pageText(ctx context.Context, pageURL string) (string, error) {
	if c.cache != nil {
		if text, ok, err := c.cache.GetPage(ctx, pageURL); err == nil && ok {
			return text, nil
		}
	}
	body, err := c.crawler.Get(ctx, pageURL)
	if err != nil {
		return "", err
	}
	text := StructuredText(body)
	c.cachePut(ctx, pageURL, text)
	return text, nil
}

func (c *Classifier) cachePut(ctx context.Context, pageURL, text string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.PutPage(ctx, pageURL, text); err != nil {
		zap.L().Warn("classify: cache write failed",
			zap.String("url", pageURL),
			zap.Error(err))
	}
}

// selectLinks asks the LLM which subpages best reveal the product and
// pricing. Anything other than bare URLs in the reply is ignored. On model
// failure the crawl proceeds with the landing page alone.
func (c *Classifier) selectLinks(ctx context.Context, links []string) []string {
	if len(links) == 0 {
		return nil
	}
	reply, err := c.complete(ctx, linkSelectionPrompt(links))
	if err != nil {
		zap.L().Warn("classify: link selection failed", zap.Error(err))
		return nil
	}
	urls := urlRe.FindAllString(reply, -1)
	if len(urls) > maxSelectedLinks {
		urls = urls[:maxSelectedLinks]
	}
	return urls
}

// screen runs the binary software/hardware call. The verdict is the last
// digit character in the reply, which tolerates models that explain
// themselves before answering.
func (c *Classifier) screen(ctx context.Context, pages []Page) (model.Screen, error) {
	reply, err := c.complete(ctx, screenPrompt(pages))
	if err != nil {
		return model.ScreenUnknown, err
	}
	for i := len(reply) - 1; i >= 0; i-- {
		switch reply[i] {
		case '1':
			return model.ScreenSoftware, nil
		case '0':
			return model.ScreenHardware, nil
		}
	}
	return model.ScreenUnknown, eris.Errorf("classify: no verdict digit in reply %q", reply)
}

// analyze extracts the commercial attributes from the crawled pages. A label
// missing from the reply yields the per-field placeholder, never an error.
func (c *Classifier) analyze(ctx context.Context, pages []Page) (model.Classification, error) {
	reply, err := c.complete(ctx, analysisPrompt(pages))
	if err != nil {
		return model.Classification{}, err
	}
	return model.Classification{
		Description:  captureLabel(descriptionRe, reply),
		Industry:     captureLabel(industryRe, reply),
		ClientType:   captureLabel(clientTypeRe, reply),
		RevenueModel: captureLabel(revenueRe, reply),
		Region:       captureLabel(regionRe, reply),
	}, nil
}

func (c *Classifier) complete(ctx context.Context, prompt string) (string, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (string, error) {
		resp, err := c.llm.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     c.model,
			MaxTokens: 1024,
			Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
		})
		if err != nil {
			return "", eris.Wrap(err, "classify: create message")
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return "", errEmptyReply
		}
		resp.Usage.LogUsage(c.model, "classify")
		return text, nil
	})
}

func captureLabel(re *regexp.Regexp, reply string) string {
	m := re.FindStringSubmatch(reply)
	if m == nil {
		return model.NotAvailable
	}
	value := strings.TrimSpace(m[1])
	if value == "" {
		return model.NotAvailable
	}
	return value
}

func renderPages(pages []Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "%s: %s\n", p.URL, p.Text)
	}
	return b.String()
}

func linkSelectionPrompt(links []string) string {
	return fmt.Sprintf(`From the following list of URLs on a company website, choose the 2 most relevant pages to determine if the company is a SaaS startup. Prioritize URLs that:

- Clearly describe the company's product or services.
- Provide information on pricing, subscription plans, or service delivery methods.
- Include details about the types of clients the company serves.

Ignore URLs related to blogs, careers, or unrelated marketing content.

Return the top 2 URLs, each on a new line, with no additional text or formatting.

**Link list**
%s`, strings.Join(links, "\n"))
}

func screenPrompt(pages []Page) string {
	return fmt.Sprintf(`You are an expert in classifying a company's product or service as "Software" or "Hardware" based on the following mapping of website links to their scraped content (link1: content1, link2: content2, ...). Based on this data, determine if the company is primarily a Software or Hardware company.

%s

Give a binary output:
- "1" for a Software company
- "0" for a Hardware company`, renderPages(pages))
}

func analysisPrompt(pages []Page) string {
	return fmt.Sprintf(`You are an expert in analyzing companies based on website content. You are provided with a company's scraped website content in the following mapping format (link1: content1, link2: content2, ...):

%s

Analyze the content and return the following details in the exact format specified:

Product/Service: <One-sentence description of the company's main product or service>
Industry: <Industry>
Client Type: <B2B or B2C>
Revenue Model: <Revenue model>
Market Region: <Market region>`, renderPages(pages))
}
