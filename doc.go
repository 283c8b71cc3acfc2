// Package mdserve serves a directory of Markdown documents as HTML pages
// over a minimal request/response protocol.
//
// # Quick Start
//
// Build a router over a document directory, hand it to a server and serve:
//
//	router := mdserve.NewRouter("./docs")
//	pool := mdserve.NewWorkerPool(5)
//	srv := mdserve.NewServer(router, pool)
//
//	ln, err := net.Listen("tcp", "127.0.0.1:7878")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Serve(ctx, ln); err != nil {
//	    log.Fatal(err)
//	}
//
// Serve returns when ctx is cancelled. Connections already accepted are
// finished before the pool shuts down.
//
// # Request Handling
//
// Only the first line of a request is read. Recognized forms are:
//
//	GET / HTTP/1.1        index document if present, else the listing
//	GET /list HTTP/1.1    directory listing
//	GET /NAME.md HTTP/1.1 that document from the document root
//
// Anything else gets the not-found page. HTTP/1.0 is accepted in place of
// HTTP/1.1; responses always use HTTP/1.1 status lines.
//
// # Rendering
//
// Pages are produced by internal/pipeline. The default engine is a small
// line-oriented state machine (headings, lists, fenced code, paragraphs and
// inline bold, italic, code and links). A goldmark engine with chroma
// highlighting is available via WithRenderer.
//
// # Worker Pool
//
// WorkerPool runs submitted jobs on a fixed set of goroutines fed from one
// unbounded FIFO queue. Shutdown stops intake, lets workers drain the queue
// and waits for every worker to exit:
//
//	pool := mdserve.NewWorkerPool(4)
//	for _, job := range jobs {
//	    if err := pool.Submit(job); err != nil {
//	        break
//	    }
//	}
//	pool.Shutdown()
//
// # Error Handling
//
// Sentinel errors are wrapped with %w and checked with errors.Is:
//
//	if errors.Is(err, mdserve.ErrPoolClosed) {
//	    // the pool no longer accepts work
//	}
package mdserve
