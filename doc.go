// Package tex2site publishes LaTeX papers to a static research website.
//
// # Quick Start
//
// Describe the paper, pick a site, and publish:
//
//	site := tex2site.DefaultSite("/srv/www")
//	svc := tex2site.New(site)
//
//	result, err := svc.Publish(ctx, tex2site.Job{
//	    Source: "paper/main.tex",
//	    Slug:   "Holographic_Codes",
//	    Meta: &tex2site.Metadata{
//	        Title:    "Holographic Codes",
//	        Category: tex2site.CategoryTheory,
//	        Tags:     []string{"quantum", "codes"},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println("warning:", w)
//	}
//
// # Pipeline
//
// A publish run goes through these stages:
//
//  1. Conversion of the .tex source to an HTML artifact by LaTeXML (latexmlc)
//  2. Figure relocation into papers/<slug>_figures/
//  3. Page wrapping: the artifact body is placed in the site's paper template
//  4. Site integration: a listing entry is inserted in index.html and a graph
//     node is suggested for graph-data.js
//
// Only conversion and page writing can fail a run. Later stages degrade to
// warnings collected in Result.Warnings. Job.Mode skips stages 2 and 4
// (ModeOutputOnly) or only stage 4 (ModeNoIntegrate).
//
// # Custom Templates
//
// The page and listing entry markup come from embedded templates. Override
// them with a directory containing templates/paper.html or templates/entry.html:
//
//	loader, err := assets.NewAssetResolver("/path/to/overrides")
//	svc := tex2site.New(site, tex2site.WithAssetLoader(loader))
//
// # Engine Requirements
//
// Conversion requires LaTeXML on PATH. Use WithEngine to plug in another
// converter or a test double.
package tex2site
