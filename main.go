package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"seo_article_writer/config"
	"seo_article_writer/enhancer"
	"seo_article_writer/generator"
	"seo_article_writer/imagesearch"
	"seo_article_writer/publisher"
	"seo_article_writer/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	title := flag.String("title", "", "article title")
	audience := flag.String("audience", "general readers", "target audience")
	tone := flag.String("tone", "professional", "writing tone")
	keywords := flag.String("keywords", "", "comma separated keywords, first three are primary")
	images := flag.Bool("images", false, "insert Unsplash images into the article")
	mock := flag.Bool("mock", false, "use the offline mock model instead of the LLM API")
	out := flag.String("out", "", "write the article to this directory (overrides config.output_dir)")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	// An explicit --config must exist; the default path is optional.
	required := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			required = true
		}
	})
	cfg, err := config.Load(*configPath, required)
	if err != nil {
		fatal(err)
	}

	llm, err := buildLLM(cfg, *mock)
	if err != nil {
		fatal(err)
	}
	gen, err := generator.NewGenerator(llm, verbose, log.Default())
	if err != nil {
		fatal(err)
	}

	// Web server mode
	if *serve {
		var enh server.ArticleEnhancer
		if cfg.Unsplash.AccessKey != "" {
			e, err := buildEnhancer(cfg)
			if err != nil {
				fatal(err)
			}
			enh = e
		} else {
			log.Printf("[serve] unsplash access key not set; image enhancement disabled")
		}
		srv, err := server.New(gen, enh, cfg.RequestTimeout(), log.Default())
		if err != nil {
			fatal(err)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fatal(err)
		}
		return
	}

	if *title == "" {
		fatal(fmt.Errorf("--title is required"))
	}
	params := generator.ArticleParams{
		Title:          *title,
		TargetAudience: *audience,
		Tone:           *tone,
		Keywords:       splitKeywords(*keywords),
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	defer cancel()

	log.Printf("[cli] generating title=%q keywords=%q", params.Title, params.Keywords)
	content, err := gen.Generate(ctx, params)
	if err != nil {
		fatal(err)
	}
	html := content.HTML

	if *images {
		enh, err := buildEnhancer(cfg)
		if err != nil {
			fatal(err)
		}
		enhanced, err := enh.Enhance(ctx, params, &content)
		if err != nil {
			fatal(err)
		}
		if enhanced != "" {
			html = enhanced
		}
	}

	dir := cfg.OutputDir
	if *out != "" {
		dir = *out
	}
	if dir == "" {
		fmt.Println(html)
		return
	}
	p, err := publisher.New(dir, verbose, log.Default())
	if err != nil {
		fatal(err)
	}
	path, err := p.Publish(publisher.Article{Params: params, HTML: html})
	if err != nil {
		fatal(err)
	}
	log.Printf("[cli] article written to %s", path)
	fmt.Println(path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func buildLLM(cfg config.Config, mock bool) (generator.LLMClient, error) {
	if mock {
		return generator.NewMockLLM(), nil
	}
	// Provider validity (openai / deepseek with base_url) is checked by config.Load.
	return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
}

func buildEnhancer(cfg config.Config) (*enhancer.Enhancer, error) {
	images, err := imagesearch.NewUnsplashClient(imagesearch.Settings{
		AccessKey: cfg.Unsplash.AccessKey,
		AppName:   cfg.Unsplash.AppName,
		BaseURL:   cfg.Unsplash.BaseURL,
	}, nil)
	if err != nil {
		return nil, err
	}
	return enhancer.New(images, verbose, log.Default())
}
