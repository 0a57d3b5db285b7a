// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command cmsbench provides a load-generation tool for a cmsrestd
// server.
package main

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diffeo/go-cmsrest/input"
	"github.com/diffeo/go-cmsrest/restclient"
	"github.com/diffeo/go-cmsrest/restdata"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

type benchWork struct {
	Client      *restclient.Client
	Group       int
	Concurrency int

	// failures counts requests that returned an error.
	failures int64
}

// Run calls runner from Concurrency goroutines and waits for all of
// them.
func (bench *benchWork) Run(runner func()) {
	wg := sync.WaitGroup{}
	wg.Add(bench.Concurrency)
	for i := 0; i < bench.Concurrency; i++ {
		go func() {
			defer wg.Done()
			runner()
		}()
	}
	wg.Wait()
}

// check counts a failed request.
func (bench *benchWork) check(err error) bool {
	if err != nil {
		atomic.AddInt64(&bench.failures, 1)
		logrus.WithError(err).Debug("request failed")
		return false
	}
	return true
}

// report logs the outcome of count requests started at start.
func (bench *benchWork) report(what string, count int, start time.Time) {
	elapsed := time.Since(start)
	logrus.WithFields(logrus.Fields{
		"requests": count,
		"failures": atomic.LoadInt64(&bench.failures),
		"elapsed":  elapsed,
		"rate":     fmt.Sprintf("%.1f/s", float64(count)/elapsed.Seconds()),
	}).Info(what)
}

var bench benchWork

// contentTypeCreate builds a ContentTypeCreate body with a unique
// identifier and a couple of fields.
func contentTypeCreate() *input.Fragment {
	identifier := "bench_" + uuid.NewV4().String()

	names := input.NewFragment()
	value := input.NewFragment()
	value.Set("_languageCode", "eng-US")
	value.Set("#text", identifier)
	names.Set("value", []interface{}{value})

	title := input.NewFragment()
	title.Set("identifier", "title")
	title.Set("fieldType", "ezstring")
	settings := input.NewFragment()
	settings.Set("defaultType", "DEFAULT_CURRENT_DATE")
	published := input.NewFragment()
	published.Set("identifier", "published")
	published.Set("fieldType", "ezdatetime")
	published.Set("fieldSettings", settings)
	fields := input.NewFragment()
	fields.Set("FieldDefinition", []interface{}{title, published})

	create := input.NewFragment()
	create.Set("identifier", identifier)
	create.Set("mainLanguageCode", "eng-US")
	create.Set("names", names)
	create.Set("FieldDefinitions", fields)
	return create
}

var addTypes = cli.Command{
	Name:  "add",
	Usage: "create many content types",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "count",
			Value: 100,
			Usage: "number of content types to create",
		},
		cli.BoolFlag{
			Name:  "publish",
			Usage: "publish the content types as they are created",
		},
	},
	Action: func(c *cli.Context) {
		count := c.Int("count")
		u, err := bench.Client.Route(restdata.RouteCreateContentType, map[string]interface{}{
			"contentTypeGroupId": bench.Group,
		})
		if err != nil {
			logrus.WithError(err).Fatal("cannot build URL")
		}
		if c.Bool("publish") {
			u.RawQuery = "publish=true"
		}
		href := u.String()
		numbers := make(chan int)
		go func() {
			for i := 1; i <= count; i++ {
				numbers <- i
			}
			close(numbers)
		}()
		start := time.Now()
		bench.Run(func() {
			for <-numbers != 0 {
				_, err := bench.Client.Post(href, input.TypeContentTypeCreate, contentTypeCreate())
				bench.check(err)
			}
		})
		bench.report("created content types", count, start)
	},
}

var loadTypes = cli.Command{
	Name:  "load",
	Usage: "repeatedly load one content type and its field definitions",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "id",
			Value: 1,
			Usage: "content type ID to load",
		},
		cli.IntFlag{
			Name:  "count",
			Value: 1000,
			Usage: "number of loads per worker",
		},
	},
	Action: func(c *cli.Context) {
		vars := map[string]interface{}{"id": c.Int("id")}
		count := c.Int("count")
		start := time.Now()
		bench.Run(func() {
			for i := 0; i < count; i++ {
				doc, err := bench.Client.GetFrom("content/types/{id}", vars)
				if !bench.check(err) {
					continue
				}
				fields, ok := doc.Root.Fragment("FieldDefinitions")
				if !ok {
					continue
				}
				items, _ := fields.Get("FieldDefinition")
				list, _ := items.([]interface{})
				for _, item := range list {
					if fd, ok := item.(*input.Fragment); ok {
						href, _ := fd.String("_href")
						_, err = bench.Client.Get(href)
						bench.check(err)
					}
				}
			}
		})
		bench.report("loaded content types", count*bench.Concurrency, start)
	},
}

func main() {
	app := cli.NewApp()
	app.Usage = "benchmark a content repository REST server"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "url",
			Value: "http://localhost:5980/",
			Usage: "base URL of the REST server",
		},
		cli.BoolFlag{
			Name:  "xml",
			Usage: "speak XML instead of JSON",
		},
		cli.IntFlag{
			Name:  "group",
			Value: 1,
			Usage: "content type group to create content types in",
		},
		cli.IntFlag{
			Name:  "concurrency",
			Value: runtime.NumCPU(),
			Usage: "run this many jobs in parallel",
		},
	}
	app.Commands = []cli.Command{
		addTypes,
		loadTypes,
	}
	app.Before = func(c *cli.Context) (err error) {
		bench.Client, err = restclient.New(c.String("url"))
		if err != nil {
			return
		}
		if c.Bool("xml") {
			bench.Client.Format = restdata.FormatXML
		}
		bench.Group = c.Int("group")
		bench.Concurrency = c.Int("concurrency")
		return
	}
	app.RunAndExitOnError()
}
