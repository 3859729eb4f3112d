package deck

import (
	"fmt"

	"github.com/slidesmith/slidesmith/internal/xmltree"
	"github.com/slidesmith/slidesmith/opc"
)

// NewFallback builds a presentation on the built-in dark theme, used
// when no template is available. It starts with zero slides; callers
// append blank slides and decorate them with the same overlay contract
// the template path uses.
func NewFallback() *Presentation {
	pkg := opc.NewPackage()

	mustAdd := func(name, contentType, data string) {
		if _, err := pkg.AddPart(name, contentType, []byte(data)); err != nil {
			// Parts are fixed constants added to an empty package; a
			// collision here is a programming error.
			panic(err)
		}
	}

	mustAdd("ppt/presentation.xml", opc.ContentTypePresentation, fallbackPresentationXML)
	mustAdd("ppt/slideMasters/slideMaster1.xml", opc.ContentTypeSlideMaster, fallbackMasterXML)
	mustAdd("ppt/slideLayouts/slideLayout1.xml", opc.ContentTypeSlideLayout, fallbackLayoutXML)
	mustAdd("ppt/theme/theme1.xml", opc.ContentTypeTheme, fallbackThemeXML)

	pkg.Rels("").Add(opc.RelTypeOfficeDocument, "ppt/presentation.xml")
	pkg.Rels("ppt/presentation.xml").Add(opc.RelTypeSlideMaster, "slideMasters/slideMaster1.xml")
	pkg.Rels("ppt/slideMasters/slideMaster1.xml").Add(opc.RelTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
	pkg.Rels("ppt/slideMasters/slideMaster1.xml").Add(opc.RelTypeTheme, "../theme/theme1.xml")
	pkg.Rels("ppt/slideLayouts/slideLayout1.xml").Add(opc.RelTypeSlideMaster, "../slideMasters/slideMaster1.xml")

	presDoc, err := xmltree.Parse([]byte(fallbackPresentationXML))
	if err != nil {
		panic(err)
	}

	return &Presentation{
		pkg:      pkg,
		presPath: "ppt/presentation.xml",
		presDoc:  presDoc,
	}
}

// AppendBlankSlide adds an empty slide on the built-in blank layout:
// themed background, empty shape tree. The returned slide satisfies
// the decoration contract with nothing underneath it.
func (p *Presentation) AppendBlankSlide() (*Slide, error) {
	doc, err := xmltree.Parse([]byte(fallbackSlideXML))
	if err != nil {
		return nil, fmt.Errorf("parsing blank slide skeleton: %w", err)
	}

	path := p.nextSlidePath()
	s := &Slide{path: path, doc: doc, rels: p.pkg.Rels(path)}
	s.rels.Add(opc.RelTypeSlideLayout, "../slideLayouts/slideLayout1.xml")

	if err := p.registerSlide(s); err != nil {
		return nil, err
	}
	return s, nil
}

const fallbackPresentationXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:sldMasterIdLst>
    <p:sldMasterId id="2147483648" r:id="rId1"/>
  </p:sldMasterIdLst>
  <p:sldIdLst/>
  <p:sldSz cx="12192000" cy="6858000"/>
  <p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`

const fallbackSlideXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="0F172A"/></a:solidFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`

const fallbackMasterXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="0F172A"/></a:solidFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
    </p:spTree>
  </p:cSld>
  <p:clrMap bg1="dk1" tx1="lt1" bg2="dk2" tx2="lt2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="2147483649" r:id="rId1"/>
  </p:sldLayoutIdLst>
</p:sldMaster>`

const fallbackLayoutXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank" preserve="1">
  <p:cSld name="Blank">
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`

const fallbackThemeXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Slidesmith Dark">
  <a:themeElements>
    <a:clrScheme name="Slidesmith Dark">
      <a:dk1><a:srgbClr val="0F172A"/></a:dk1>
      <a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="1A2745"/></a:dk2>
      <a:lt2><a:srgbClr val="D0D8E8"/></a:lt2>
      <a:accent1><a:srgbClr val="358EF1"/></a:accent1>
      <a:accent2><a:srgbClr val="7C3AED"/></a:accent2>
      <a:accent3><a:srgbClr val="92BCF5"/></a:accent3>
      <a:accent4><a:srgbClr val="2563EB"/></a:accent4>
      <a:accent5><a:srgbClr val="9333EA"/></a:accent5>
      <a:accent6><a:srgbClr val="60A5FA"/></a:accent6>
      <a:hlink><a:srgbClr val="358EF1"/></a:hlink>
      <a:folHlink><a:srgbClr val="7C3AED"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="Slidesmith Dark">
      <a:majorFont>
        <a:latin typeface="Calibri Light"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="Calibri"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Slidesmith Dark">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
</a:theme>`
