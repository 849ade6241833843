package saints

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const januaryPage = `<!DOCTYPE html>
<html>
<body>
<a name="top"></a>
<p><b>14 janvier</b></p>
<p><u>Jean Bosco</u> <i>(latin: Ioannes)</i></p>
<p>Fondateur des Salésiens.</p>
<p><img src="images/jean-bosco.jpg" alt="Jean Bosco"></p>
<p><a href="#top">Retour en haut</a></p>
<p>Texte après la sentinelle.</p>
<p><b>15 janvier</b></p>
<p><u>Rémi</u></p>
<p>Évêque de Reims.</p>
<p><img src="images/remi.jpg" alt="Remi"></p>
<p><a href="#top"> Retour en haut </a></p>
<p><b>1er janvier</b></p>
<p>Sainte Marie, Mère de Dieu.</p>
<p><a href="#top">Retour en haut</a></p>
<p><b>20 janvier</b></p>
<p><u>Fabien</u></p>
<p>Pape et martyr.</p>
<p><a href="#top">Retour en haut</a></p>
<p><b>20 janvier</b></p>
<p><u>Sébastien</u></p>
<p>Martyr à Rome.</p>
<p><img src="images/sebastien.jpg" alt="Sébastien"></p>
<p><a href="#top">Retour en haut</a></p>
</body>
</html>`

func parseDocument(t *testing.T, page string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("NewDocumentFromReader returned error: %v", err)
	}
	return doc
}
